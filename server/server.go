package server

import (
	"fmt"
	"net/http"

	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/offload"
	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Route paths.
const (
	PathSubmitBlock              = "/relay/v1/builder/blocks"
	PathGetValidators            = "/relay/v1/builder/validators"
	PathGetDeliveredPayloads     = "/relay/v1/data/bidtraces/proposer_payload_delivered"
	PathGetReceivedBids          = "/relay/v1/data/bidtraces/builder_blocks_received"
	PathGetValidatorRegistration = "/relay/v1/data/validator_registration"
)

// Server routes relay API requests to an API implementation.
type Server struct {
	api    API
	engine encoding.ContentEngine
	pool   *offload.Pool
	// Set when the pool was created by New and should be closed with the server.
	ownsPool bool

	logger            logrus.FieldLogger
	maxBodyBytes      int64
	exposeDiagnostics bool

	mux *http.ServeMux
}

// New creates a server for api. The returned server must be closed to stop its
// encoding workers.
func New(api API, opts ...Option) (*Server, error) {
	server := &Server{
		api:          api,
		logger:       logrus.StandardLogger(),
		maxBodyBytes: DefaultMaxBodyBytes,
		mux:          http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(server)
	}

	if server.engine == nil {
		engine, err := relaytypes.NewContentEngine()
		if err != nil {
			return nil, xerrors.Errorf("error creating server: %w", err)
		}
		server.engine = engine
	}

	if server.pool == nil {
		server.pool = offload.New(server.engine, 0)
		server.ownsPool = true
	}

	server.route(http.MethodPost, PathSubmitBlock, server.submitBlock)
	server.route(http.MethodGet, PathGetValidators, server.getValidators)
	server.route(http.MethodGet, PathGetDeliveredPayloads, server.getDeliveredPayloads)
	server.route(http.MethodGet, PathGetReceivedBids, server.getReceivedBids)
	server.route(
		http.MethodGet, PathGetValidatorRegistration, server.getValidatorRegistration,
	)
	server.mux.HandleFunc("/", server.notFound)

	return server, nil
}

// Registers handler for path, answering any other method with a structured 405.
func (server *Server) route(method string, path string, handler http.HandlerFunc) {
	server.mux.HandleFunc(path, func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != method {
			writer.Header().Set("Allow", method)
			server.writeError(writer, request, relayerrors.InvalidMethodError.New(
				fmt.Sprintf("method %v not allowed on %v", request.Method, path), nil,
			))
			return
		}
		handler(writer, request)
	})
}

func (server *Server) notFound(writer http.ResponseWriter, request *http.Request) {
	server.writeError(writer, request, relayerrors.NotFoundError.New("not found", nil))
}

// ServeHTTP implements http.Handler.
func (server *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	defer server.recoverPanic(writer, request)
	server.mux.ServeHTTP(writer, request)
}

// Turns a panicking handler into a ServerError response. Panics raised with
// ErrorType.Panic are written as the error they carry.
func (server *Server) recoverPanic(writer http.ResponseWriter, request *http.Request) {
	recovered := recover()
	if recovered == nil {
		return
	}

	relayErr, ok := recovered.(*relayerrors.Error)
	if !ok {
		relayErr = relayerrors.ServerError.New(
			"internal server error", xerrors.Errorf("panic: %v", recovered),
		)
	}

	server.writeError(writer, request, relayErr)
}

func (server *Server) requestLogger(request *http.Request) logrus.FieldLogger {
	return server.logger.WithFields(logrus.Fields{
		"method": request.Method,
		"path":   request.URL.Path,
	})
}

// Close stops the encoding workers if the server started them.
func (server *Server) Close() {
	if server.ownsPool {
		server.pool.Close()
	}
}
