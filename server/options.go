package server

import (
	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/offload"
	"github.com/sirupsen/logrus"
)

// DefaultMaxBodyBytes bounds request bodies when WithMaxBodyBytes is not passed.
const DefaultMaxBodyBytes = 16 << 20

// Option configures a Server.
type Option func(server *Server)

// WithLogger sets the logger requests are logged to. Defaults to the logrus standard
// logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(server *Server) {
		server.logger = logger
	}
}

// WithEngine sets the content engine bodies are decoded with. Defaults to
// relaytypes.NewContentEngine().
func WithEngine(engine encoding.ContentEngine) Option {
	return func(server *Server) {
		server.engine = engine
	}
}

// WithPool sets the pool responses are encoded on. The caller keeps ownership: Close
// on the server will not close it.
func WithPool(pool *offload.Pool) Option {
	return func(server *Server) {
		server.pool = pool
	}
}

// WithMaxBodyBytes bounds the size of request bodies.
func WithMaxBodyBytes(maxBytes int64) Option {
	return func(server *Server) {
		server.maxBodyBytes = maxBytes
	}
}

// WithExposeDiagnostics sends error ids, causes and stacks to clients in the
// stacktraces field of error responses. Off by default.
func WithExposeDiagnostics(expose bool) Option {
	return func(server *Server) {
		server.exposeDiagnostics = expose
	}
}
