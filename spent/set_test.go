package spent

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testKeyImage(t *testing.T, b byte) *lattice.KeyImage {
	kp, err := lattice.KeyPairFromSeed(bytes.Repeat([]byte{b}, params.SeedBytes))
	require.NoError(t, err)
	ki, err := lattice.NewKeyImage(kp.SecretKey())
	require.NoError(t, err)
	return ki
}

func TestSet_DoubleSpend(t *testing.T) {
	s := NewSet(zaptest.NewLogger(t))
	ki := testKeyImage(t, 1)

	require.NoError(t, s.Add(ki, 10))
	require.True(t, s.Contains(ki))

	// the same image decoded from bytes is the same spend
	decoded, err := lattice.KeyImageFromBytes(ki.Bytes())
	require.NoError(t, err)
	err = s.Add(decoded, 11)
	require.ErrorIs(t, err, ErrDoubleSpend)
	require.Contains(t, err.Error(), "height 10")

	require.NoError(t, s.Add(testKeyImage(t, 2), 11))
	require.Equal(t, 2, s.Len())

	require.True(t, s.Remove(ki))
	require.False(t, s.Remove(ki))
	require.False(t, s.Contains(ki))
	require.NoError(t, s.Add(ki, 12))

	require.Error(t, s.Add(nil, 1))
	require.False(t, s.Contains(nil))
}

func TestSet_RemoveAboveAndAscend(t *testing.T) {
	s := NewSet(nil)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Add(testKeyImage(t, byte(i)), uint64(100+i)))
	}
	require.Equal(t, 2, s.RemoveAbove(101))
	require.Equal(t, 2, s.Len())

	var prev []byte
	count := 0
	s.Ascend(func(image []byte, height uint64) bool {
		require.Len(t, image, params.KeyImageBytes)
		require.LessOrEqual(t, height, uint64(101))
		if prev != nil {
			require.Negative(t, bytes.Compare(prev, image))
		}
		prev = image
		count++
		return true
	})
	require.Equal(t, 2, count)
}

func TestSet_Concurrent(t *testing.T) {
	s := NewSet(nil)
	ki := testKeyImage(t, 5)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Add(ki, uint64(i))
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range results {
		if err == nil {
			accepted++
		} else {
			require.True(t, errors.Is(err, ErrDoubleSpend))
		}
	}
	require.Equal(t, 1, accepted)
}
