package server

import (
	"net/http"

	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"golang.org/x/xerrors"
)

/*
Decodes the request body into receiver using the representation named by the
Content-Type header.

The header is checked first: a body declared as anything other than JSON or SSZ is
rejected with UnsupportedMediaTypeError and never read. Bodies larger than the server
limit are rejected with PayloadTooLargeError, and bodies that match no schema with
RequestDecodeError. The decoder's own error is kept as the source so it only reaches
clients when diagnostics are exposed.
*/
func (server *Server) decodeBody(
	writer http.ResponseWriter, request *http.Request, receiver interface{},
) *relayerrors.Error {
	mimeType := mimetype.FromHeader(request.Header)
	if !mimetype.IsObject(mimeType) || !server.engine.HandlesDecode(mimeType) {
		return relayerrors.UnsupportedMediaTypeError.New(
			"unsupported content type '"+request.Header.Get(mimetype.HeaderName)+"'", nil,
		)
	}

	body := http.MaxBytesReader(writer, request.Body, server.maxBodyBytes)
	err := server.engine.Decode(mimeType, receiver, body)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if xerrors.As(err, &tooLarge) {
		return relayerrors.PayloadTooLargeError.New("request body too large", err)
	}

	return relayerrors.RequestDecodeError.New(
		"could not decode request body as "+string(mimeType), err,
	)
}
