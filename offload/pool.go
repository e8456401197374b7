/*
Package offload runs body serialization on a fixed set of worker goroutines.

Encoding a large response can take a while. Handing it to a Pool keeps the number of
goroutines busy serializing bounded, and lets the request goroutine give up on the
result as soon as its context is done.
*/
package offload

import (
	"bytes"
	"context"
	"runtime"
	"sync"

	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/mimetype"
	"golang.org/x/xerrors"
)

// ErrClosed is returned by Encode once the pool has been closed.
var ErrClosed = xerrors.New("offload pool is closed")

type result struct {
	body []byte
	err  error
}

type job struct {
	ctx      context.Context
	mimeType mimetype.MimeType
	content  interface{}
	// Buffered so a worker never blocks on a caller that stopped waiting.
	result chan result
}

// Pool encodes content with a content engine on a fixed number of workers.
type Pool struct {
	engine  encoding.ContentEngine
	workers int

	jobs      chan *job
	done      chan struct{}
	closeOnce sync.Once
	running   sync.WaitGroup
}

// MinDefaultWorkers is the fewest workers a pool started with the default count gets.
// With a single worker one slow encode queues every other response behind it.
const MinDefaultWorkers = 2

// New starts a pool of workers goroutines encoding with engine. A workers count below
// one uses one worker per CPU, and never fewer than MinDefaultWorkers. An explicit
// count of one is honored, but then encodes run strictly one after another.
func New(engine encoding.ContentEngine, workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
		if workers < MinDefaultWorkers {
			workers = MinDefaultWorkers
		}
	}

	pool := &Pool{
		engine:  engine,
		workers: workers,
		jobs:    make(chan *job),
		done:    make(chan struct{}),
	}

	pool.running.Add(workers)
	for index := 0; index < workers; index++ {
		go pool.work()
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (pool *Pool) Workers() int {
	return pool.workers
}

func (pool *Pool) work() {
	defer pool.running.Done()

	for {
		select {
		case <-pool.done:
			return
		case thisJob := <-pool.jobs:
			thisJob.result <- pool.run(thisJob)
		}
	}
}

func (pool *Pool) run(thisJob *job) result {
	// The caller is gone, skip the work.
	if err := thisJob.ctx.Err(); err != nil {
		return result{err: err}
	}

	buffer := new(bytes.Buffer)
	err := pool.engine.Encode(thisJob.mimeType, thisJob.content, buffer)
	if err != nil {
		return result{err: err}
	}
	return result{body: buffer.Bytes()}
}

/*
Encode serializes content as mimeType on one of the pool's workers and returns the
complete body. It blocks until a worker is free and then until the body is ready.

If ctx is done first, ctx.Err() is returned and the body is dropped when the worker
finishes with it.
*/
func (pool *Pool) Encode(
	ctx context.Context, mimeType mimetype.MimeType, content interface{},
) ([]byte, error) {
	thisJob := &job{
		ctx:      ctx,
		mimeType: mimeType,
		content:  content,
		result:   make(chan result, 1),
	}

	select {
	case <-pool.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case pool.jobs <- thisJob:
	}

	select {
	case encoded := <-thisJob.result:
		return encoded.body, encoded.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the workers once they finish their current job. Safe to call more than
// once.
func (pool *Pool) Close() {
	pool.closeOnce.Do(func() {
		close(pool.done)
	})
	pool.running.Wait()
}
