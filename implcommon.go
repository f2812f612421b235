package ui

import (
	"context"
	"image"
	"runtime"
	"sync"
)

type frameJob struct {
	index int
	img   *image.NRGBA
}

type frameResult struct {
	index int
	err   error
}

// encodeFrames writes every frame received from jobs to the sink using one worker per CPU, and
// returns the first error (cancelling the remaining work through cancel).
func encodeFrames(ctx context.Context, cancel context.CancelCauseFunc, jobs <-chan *frameJob, sink FrameSink) error {
	results := make(chan *frameResult)
	workerWg := &sync.WaitGroup{}
	for i := 0; i < runtime.NumCPU(); i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for job := range jobs { // Closed when all frames are rendered (or cancelled)
				select {
				case <-ctx.Done():
					continue // Drain so the producer never blocks
				default:
				}
				results <- &frameResult{index: job.index, err: sink.WriteFrame(job.index, job.img)}
			}
		}()
	}
	go func() { // Make sure results are closed after all jobs are processed
		workerWg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			cancel(res.err)
		}
	}
	return firstErr
}
