package offload_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/offload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

const blockingType mimetype.MimeType = "application/x-blocking"

// Blocks every encode until release is closed.
type BlockingEncoder struct {
	started chan struct{}
	release chan struct{}
}

func (encoder *BlockingEncoder) Encode(
	engine encoding.ContentEngine, writer io.Writer, content interface{},
) error {
	encoder.started <- struct{}{}
	<-encoder.release
	_, err := io.WriteString(writer, "slow")
	return err
}

func (encoder *BlockingEncoder) Decode(
	engine encoding.ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return xerrors.New("not implemented")
}

func createPool(test *testing.T, workers int) (*offload.Pool, *BlockingEncoder) {
	engine, err := encoding.NewContentEngine()
	require.NoError(test, err)

	blocking := &BlockingEncoder{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
	engine.SetEncoder(blockingType, blocking)

	return offload.New(engine, workers), blocking
}

func TestEncode(test *testing.T) {
	pool, _ := createPool(test, 1)
	defer pool.Close()

	body, err := pool.Encode(
		context.Background(), mimetype.JSON, map[string]int{"code": 404},
	)
	require.NoError(test, err)
	assert.Equal(test, `{"code":404}`, string(body))
}

func TestEncodeError(test *testing.T) {
	pool, _ := createPool(test, 1)
	defer pool.Close()

	_, err := pool.Encode(context.Background(), "text/csv", "a,b")
	assert.EqualError(test, err, "no encoder for text/csv")
}

func TestDefaultWorkers(test *testing.T) {
	pool, _ := createPool(test, 0)
	defer pool.Close()

	assert.GreaterOrEqual(test, pool.Workers(), offload.MinDefaultWorkers)
	assert.GreaterOrEqual(test, pool.Workers(), runtime.NumCPU())
}

// The default pool keeps a fast encode moving while a slow one runs, whatever the CPU
// count.
func TestDefaultWorkersIsolateSlowEncode(test *testing.T) {
	assert := assert.New(test)

	pool, blocking := createPool(test, 0)
	defer pool.Close()

	slowDone := make(chan []byte)
	go func() {
		body, _ := pool.Encode(context.Background(), blockingType, "large")
		slowDone <- body
	}()
	<-blocking.started

	body, err := pool.Encode(context.Background(), mimetype.TEXT, "fast")
	require.NoError(test, err)
	assert.Equal("fast", string(body))

	close(blocking.release)
	assert.Equal("slow", string(<-slowDone))
}

// A slow encode holds one worker. Other encodes go through the rest of the pool.
func TestSlowEncodeDoesNotBlockOthers(test *testing.T) {
	assert := assert.New(test)

	pool, blocking := createPool(test, 2)
	defer pool.Close()

	slowDone := make(chan []byte)
	go func() {
		body, _ := pool.Encode(context.Background(), blockingType, "large")
		slowDone <- body
	}()
	<-blocking.started

	for index := 0; index < 10; index++ {
		body, err := pool.Encode(context.Background(), mimetype.TEXT, "fast")
		require.NoError(test, err)
		assert.Equal("fast", string(body))
	}

	select {
	case <-slowDone:
		test.Fatal("slow encode finished before release")
	default:
	}

	close(blocking.release)
	assert.Equal("slow", string(<-slowDone))
}

func TestEncodeCancelledWhileRunning(test *testing.T) {
	assert := assert.New(test)

	pool, blocking := createPool(test, 1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error)
	go func() {
		_, err := pool.Encode(ctx, blockingType, "large")
		errs <- err
	}()
	<-blocking.started

	cancel()
	assert.Equal(context.Canceled, <-errs)

	// The worker finishes its job and takes new ones.
	close(blocking.release)
	body, err := pool.Encode(context.Background(), mimetype.TEXT, "next")
	require.NoError(test, err)
	assert.Equal("next", string(body))
}

func TestEncodeCancelledWhileWaiting(test *testing.T) {
	pool, blocking := createPool(test, 1)
	defer pool.Close()

	go func() {
		_, _ = pool.Encode(context.Background(), blockingType, "large")
	}()
	<-blocking.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Encode(ctx, mimetype.TEXT, "queued")
	assert.Equal(test, context.DeadlineExceeded, err)

	close(blocking.release)
}

func TestEncodeAfterClose(test *testing.T) {
	pool, _ := createPool(test, 2)
	pool.Close()
	pool.Close()

	_, err := pool.Encode(context.Background(), mimetype.TEXT, "late")
	assert.Equal(test, offload.ErrClosed, err)
}
