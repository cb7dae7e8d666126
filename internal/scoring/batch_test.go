package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRunBatchIndexAlignment(t *testing.T) {
	reqs := make([]int, 25)
	for i := range reqs {
		reqs[i] = i
	}

	results, summary, err := RunBatch(context.Background(), 100, reqs, func(_ context.Context, n int) (*int, error) {
		doubled := n * 2
		return &doubled, nil
	})
	if err != nil {
		t.Fatalf("RunBatch() error: %v", err)
	}

	if len(results) != len(reqs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(reqs))
	}
	for i, item := range results {
		if item.Index != i {
			t.Errorf("results[%d].Index = %d", i, item.Index)
		}
		if !item.Success || item.Result == nil || *item.Result != i*2 {
			t.Errorf("results[%d] = %+v, want doubled input", i, item)
		}
	}
	if summary.Total != 25 || summary.Successful != 25 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunBatchSizeLimit(t *testing.T) {
	reqs := make([]int, 101)

	_, _, err := RunBatch(context.Background(), 100, reqs, func(_ context.Context, n int) (*int, error) {
		return &n, nil
	})
	if err == nil {
		t.Fatal("expected BatchLimitError for oversize batch")
	}
	var limitErr *BatchLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("error type = %T, want *BatchLimitError", err)
	}
	if limitErr.Limit != 100 || limitErr.Size != 101 {
		t.Errorf("limit error = %+v", limitErr)
	}
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	reqs := []int{0, 1, 2, 3, 4}

	results, summary, err := RunBatch(context.Background(), 0, reqs, func(_ context.Context, n int) (*int, error) {
		if n == 2 {
			return nil, fmt.Errorf("bad input %d", n)
		}
		if n == 3 {
			panic("scoring blew up")
		}
		return &n, nil
	})
	if err != nil {
		t.Fatalf("RunBatch() error: %v", err)
	}

	if summary.Successful != 3 || summary.Failed != 2 {
		t.Errorf("summary = %+v, want 3 successful / 2 failed", summary)
	}
	if results[2].Success || results[2].Error != "bad input 2" {
		t.Errorf("results[2] = %+v", results[2])
	}
	if results[3].Success || !strings.Contains(results[3].Error, "scoring blew up") {
		t.Errorf("results[3] = %+v, want captured panic", results[3])
	}
	for _, i := range []int{0, 1, 4} {
		if !results[i].Success {
			t.Errorf("results[%d] should have succeeded: %+v", i, results[i])
		}
	}
}
