package ringsig

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one (message, ring, signature) triple to verify.
type BatchItem struct {
	Message   []byte
	Ring      Ring
	Signature *Signature
}

// BatchVerifyResult is the outcome of the item at Index. Err is nil when it verified.
type BatchVerifyResult struct {
	Index int
	Err   error
}

// VerifyBatch verifies every item in order and returns one result per item.
func VerifyBatch(items []BatchItem) []BatchVerifyResult {
	results := make([]BatchVerifyResult, len(items))
	for i, item := range items {
		results[i] = BatchVerifyResult{Index: i, Err: Verify(item.Message, item.Ring, item.Signature)}
	}
	return results
}

// VerifyBatchParallel verifies items on at most workers goroutines, or one goroutine per
// item when workers <= 0. Results are indexed like items. Items not started before ctx is
// done report ctx.Err().
func VerifyBatchParallel(ctx context.Context, items []BatchItem, workers int) []BatchVerifyResult {
	results := make([]BatchVerifyResult, len(items))
	g, ctx := newGroup(ctx, workers)
	for i := range items {
		i := i
		g.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Err = Verify(items[i].Message, items[i].Ring, items[i].Signature)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// VerifyBatchAll verifies items in order and stops at the first failure.
func VerifyBatchAll(items []BatchItem) error {
	for i, item := range items {
		if err := Verify(item.Message, item.Ring, item.Signature); err != nil {
			return fmt.Errorf("batch item %d: %w", i, err)
		}
	}
	return nil
}

// VerifyBatchAllParallel is VerifyBatchAll on at most workers goroutines. The first failure
// cancels items that have not started yet.
func VerifyBatchAllParallel(ctx context.Context, items []BatchItem, workers int) error {
	g, ctx := newGroup(ctx, workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Verify(items[i].Message, items[i].Ring, items[i].Signature); err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// newGroup returns an errgroup bound to ctx that runs at most workers goroutines at once,
// or has no limit when workers <= 0.
func newGroup(ctx context.Context, workers int) (*errgroup.Group, context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	return g, ctx
}
