package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Sweep runs base once for every (firOrder, iirOrder) pair concurrently.
// Results are ordered by firOrders, then iirOrders. Run i uses Params.Seed
// base.Seed+i and a private random source; a source injected with WithRand
// is not used. A configured Source must be safe for concurrent use. The
// first failing run in that order determines the error.
func (p *Pipeline) Sweep(ctx context.Context, base Params, firOrders, iirOrders []int) ([]*Result, error) {
	params := make([]Params, 0, len(firOrders)*len(iirOrders))
	for _, fo := range firOrders {
		for _, io := range iirOrders {
			rp := base
			rp.FIROrder = fo
			rp.IIROrder = io
			rp.Seed = base.Seed + int64(len(params))
			params = append(params, rp)
		}
	}

	results := make([]*Result, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			worker := &Pipeline{
				logger: p.logger,
				source: p.source,
				rng:    rand.New(rand.NewSource(params[i].Seed)),
				firOpt: p.firOpt,
			}
			results[i], errs[i] = worker.Run(ctx, params[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("pipeline: sweep run %d (fir=%d iir=%d): %w",
				i, params[i].FIROrder, params[i].IIROrder, err)
		}
	}
	return results, nil
}
