// Package batch decodes a slice of execution-report documents in parallel.
// Each decode is independent and owns its tree, so the only coordination is
// the worker pool itself.
package batch

import (
	"context"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"heimdall/internal/protocol"
)

const defaultNWorkers = 4

// Result pairs a decoded report with the index of the document it came
// from. Exactly one of Report and Err is set.
type Result struct {
	Index  int
	Report *protocol.ExecutionReport
	Err    error
}

// Decode decodes every document in docs using at most workers goroutines,
// returning results in input order. A document that fails to decode puts
// its error in its own Result slot; decoding continues for the rest. Only
// context cancellation stops the pool early, in which case the documents
// never reached carry the context's error.
func Decode(ctx context.Context, docs [][]byte, workers int) []Result {
	results := make([]Result, len(docs))
	for i := range results {
		results[i].Index = i
	}
	if len(docs) == 0 {
		return results
	}
	if workers <= 0 {
		workers = defaultNWorkers
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	t, _ := tomb.WithContext(ctx)
	indexes := make(chan int)

	for w := 0; w < workers; w++ {
		t.Go(func() error {
			for {
				select {
				case <-t.Dying():
					return tomb.ErrDying
				case i, ok := <-indexes:
					if !ok {
						return nil
					}
					report, err := protocol.DecodeExecutionReport(docs[i])
					if err != nil {
						log.Error().
							Err(err).
							Int("index", i).
							Msg("unable to decode report")
					}
					results[i].Report = report
					results[i].Err = err
				}
			}
		})
	}

	// Feed the pool. Workers own their result slots exclusively, so no
	// locking is needed around the results slice.
	t.Go(func() error {
		defer close(indexes)
		for i := range docs {
			select {
			case <-t.Dying():
				return tomb.ErrDying
			case indexes <- i:
			}
		}
		return nil
	})

	err := t.Wait()
	if err != nil {
		for i := range results {
			if results[i].Report == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
	}
	return results
}
