package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cryptosuite/lion/params"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestParseRing(t *testing.T) {
	ring, err := parseRing([]byte("# members\n0a0b\n\n  ff00  \n"))
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0x0a, 0x0b}, {0xff, 0x00}}, ring)

	_, err = parseRing([]byte("0a0b\nzz\n"))
	require.ErrorContains(t, err, "ring line 2")

	ring, err = parseRing(nil)
	require.NoError(t, err)
	require.Empty(t, ring)
}

func TestParseMessage(t *testing.T) {
	c := &cobra.Command{}
	addMessageFlags(c.Flags())
	require.NoError(t, c.Flags().Parse([]string{"--msg", "hello"}))
	msg, err := parseMessage(c.Flags())
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), msg)

	c = &cobra.Command{}
	addMessageFlags(c.Flags())
	require.NoError(t, c.Flags().Parse([]string{"--msg", "ignored", "--msg-hex", "0102"}))
	msg, err = parseMessage(c.Flags())
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, msg)
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	root := &cobra.Command{Use: "lion", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool(verboseKey, false, "")
	root.AddCommand(cmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	var ring []string
	for i := 0; i < params.RingSize; i++ {
		prefix := filepath.Join(dir, fmt.Sprintf("member%d", i))
		seed := hex.EncodeToString(bytes.Repeat([]byte{byte(i)}, params.SeedBytes))
		runCommand(t, keygenCommand(), "--seed", seed, "--out", prefix)
		pk, err := os.ReadFile(prefix + ".pub")
		require.NoError(t, err)
		ring = append(ring, strings.TrimSpace(string(pk)))
	}
	ringPath := filepath.Join(dir, "ring.txt")
	require.NoError(t, os.WriteFile(ringPath, []byte(strings.Join(ring, "\n")+"\n"), 0o644))

	skPath := filepath.Join(dir, "member2.sk")
	sigPath := filepath.Join(dir, "msg.sig")
	runCommand(t, signCommand(), "--ring", ringPath, "--index", "2", "--sk", skPath, "--msg", "hello", "--out", sigPath)

	require.Equal(t, "OK\n", runCommand(t, verifyCommand(), "--ring", ringPath, "--sig", sigPath, "--msg", "hello"))

	fromSig := runCommand(t, keyImageCommand(), "--sig", sigPath)
	fromSk := runCommand(t, keyImageCommand(), "--sk", skPath)
	require.Equal(t, fromSk, fromSig)
	require.Len(t, strings.TrimSpace(fromSig), 2*params.KeyImageBytes)
}
