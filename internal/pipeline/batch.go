package pipeline

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"ticket-classifier-go/internal/types"
)

// BatchItem is the per-ticket outcome of a batch run. A failed item carries
// its error and a zero result; one failure never aborts the batch.
type BatchItem struct {
	Index  int                        `json:"index"`
	Input  string                     `json:"input"`
	Result types.ClassificationResult `json:"result"`
	Err    error                      `json:"-"`
	Error  string                     `json:"error,omitempty"`
}

// ClassifyBatch processes tickets independently across a worker pool. Tickets
// share only the immutable reference table, so no coordination is needed
// beyond the rate limiter that paces the external inference calls.
func (p *Pipeline) ClassifyBatch(ctx context.Context, messages []string, workers int, perSec float64) []BatchItem {
	if workers < 1 {
		workers = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSec), 1)
	if perSec <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	items := make([]BatchItem, len(messages))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					items[i] = BatchItem{Index: i, Input: messages[i], Err: err, Error: err.Error()}
					continue
				}
				res, err := p.Classify(ctx, messages[i])
				item := BatchItem{Index: i, Input: messages[i], Result: res, Err: err}
				if err != nil {
					item.Error = err.Error()
					p.log.WithField("ticket_index", i).WithError(err).Warn("batch ticket failed")
				}
				items[i] = item
			}
		}()
	}

	for i := range messages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}
