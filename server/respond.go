package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
)

// Written when an error response cannot be serialized either.
var fallbackBody = []byte(`{"code":500,"message":"internal server error"}`)

// Writes the result of an API call. Success is written with 200, failure with the
// code it carries. Failure codes outside 200..999 are written as 500.
func writeResult[T any](
	server *Server,
	writer http.ResponseWriter,
	request *http.Request,
	response relaytypes.Response[T],
) {
	value, errResponse := response.Unpack()
	if errResponse == nil {
		server.writeBody(writer, request, http.StatusOK, value)
		return
	}

	// Informational codes would let net/http send the body as a 200.
	status := int(errResponse.Code)
	if status < 200 || status > 999 {
		status = http.StatusInternalServerError
	}
	server.writeBody(writer, request, status, errResponse)
}

// Writes relayErr with its status and the error-* headers.
func (server *Server) writeError(
	writer http.ResponseWriter, request *http.Request, relayErr *relayerrors.Error,
) {
	if relayErr.Status() >= 500 {
		server.requestLogger(request).
			WithFields(relayErr.LogFields()).
			Error(relayErr.LogMessage())
	} else {
		server.requestLogger(request).
			WithFields(relayErr.LogFields()).
			Debug("request rejected: " + relayErr.Error())
	}

	relayErr.ToHeader(writer.Header())
	response := relayErr.Response(server.exposeDiagnostics)
	server.writeBody(writer, request, relayErr.Status(), &response)
}

/*
Serializes content as JSON on the pool and writes it with status. Headers and status
are only written once the whole body is ready. If serialization fails a generic 500
is written instead, and if the request context ends first nothing is written at all.
*/
func (server *Server) writeBody(
	writer http.ResponseWriter,
	request *http.Request,
	status int,
	content interface{},
) {
	ctx := request.Context()

	body, err := server.pool.Encode(ctx, mimetype.JSON, content)
	if err != nil {
		if ctx.Err() != nil {
			server.requestLogger(request).
				WithError(err).
				Debug("request ended before response was serialized")
			return
		}

		relayErr := relayerrors.SerializationError.New("internal server error", err)
		server.requestLogger(request).
			WithFields(relayErr.LogFields()).
			Error("error serializing response: " + relayErr.LogMessage())

		relayErr.ToHeader(writer.Header())
		body = server.fallback(ctx, relayErr)
		status = relayErr.Status()
	}

	headers := writer.Header()
	mimetype.SetHeader(headers, mimetype.JSON)
	headers.Set("Content-Length", strconv.Itoa(len(body)))
	writer.WriteHeader(status)

	if _, err := writer.Write(body); err != nil {
		server.requestLogger(request).
			WithError(err).
			Debug("error writing response body")
	}
}

// Generic body for a failed serialization.
func (server *Server) fallback(
	ctx context.Context, relayErr *relayerrors.Error,
) []byte {
	response := relayErr.Response(server.exposeDiagnostics)
	body, err := server.pool.Encode(ctx, mimetype.JSON, &response)
	if err != nil {
		return fallbackBody
	}
	return body
}
