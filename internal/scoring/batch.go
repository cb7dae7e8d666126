package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds how many batch items are evaluated at once.
const DefaultBatchConcurrency = 8

// BatchLimitError reports a batch that exceeds its size limit. The whole
// batch is rejected; no item is processed.
type BatchLimitError struct {
	Limit int
	Size  int
}

func (e *BatchLimitError) Error() string {
	return fmt.Sprintf("batch size %d exceeds limit %d", e.Size, e.Limit)
}

// BatchItem is the per-index outcome of a batch run. Exactly one of Result
// and Error is set.
type BatchItem[R any] struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	Result  *R     `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchSummary counts outcomes across a batch.
type BatchSummary struct {
	Total      int `json:"total_requests"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// RunBatch evaluates fn for every request with bounded concurrency and
// returns results index-aligned with the input. One item's failure (error or
// panic) is captured in its slot and never aborts the rest. A batch larger
// than limit is rejected wholesale with a BatchLimitError.
func RunBatch[Req, Res any](ctx context.Context, limit int, reqs []Req, fn func(context.Context, Req) (*Res, error)) ([]BatchItem[Res], BatchSummary, error) {
	if limit > 0 && len(reqs) > limit {
		return nil, BatchSummary{}, &BatchLimitError{Limit: limit, Size: len(reqs)}
	}

	results := make([]BatchItem[Res], len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := runOne(gctx, req, fn)
			if err != nil {
				results[i] = BatchItem[Res]{Index: i, Error: err.Error()}
				return nil
			}
			results[i] = BatchItem[Res]{Index: i, Success: true, Result: res}
			return nil
		})
	}
	// Workers never return errors; failures live in their slots.
	_ = g.Wait()

	summary := BatchSummary{Total: len(reqs)}
	for _, item := range results {
		if item.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	return results, summary, nil
}

// runOne isolates a single item, converting panics into errors so a bad
// input cannot take down the batch.
func runOne[Req, Res any](ctx context.Context, req Req, fn func(context.Context, Req) (*Res, error)) (res *Res, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("computation panic: %v", r)
		}
	}()
	return fn(ctx, req)
}
