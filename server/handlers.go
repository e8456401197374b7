package server

import (
	"net/http"

	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
)

func (server *Server) invalidParams(
	writer http.ResponseWriter, request *http.Request, err error,
) {
	server.writeError(writer, request, relayerrors.RequestValidationError.New(
		"invalid query parameters: "+err.Error(), err,
	))
}

func (server *Server) submitBlock(writer http.ResponseWriter, request *http.Request) {
	params, err := relaytypes.SubmitBlockQueryParamsFromValues(request.URL.Query())
	if err != nil {
		server.invalidParams(writer, request, err)
		return
	}

	submission := new(relaytypes.VersionedSubmitBlockRequest)
	if relayErr := server.decodeBody(writer, request, submission); relayErr != nil {
		server.writeError(writer, request, relayErr)
		return
	}

	server.requestLogger(request).WithField(
		"version", submission.Version.String(),
	).Debug("block submission decoded")

	writeResult(server, writer, request, server.api.SubmitBlock(
		request.Context(), params, submission,
	))
}

func (server *Server) getValidators(writer http.ResponseWriter, request *http.Request) {
	writeResult(server, writer, request, server.api.GetValidators(request.Context()))
}

func (server *Server) getDeliveredPayloads(
	writer http.ResponseWriter, request *http.Request,
) {
	params, err := relaytypes.GetDeliveredPayloadsQueryParamsFromValues(
		request.URL.Query(),
	)
	if err != nil {
		server.invalidParams(writer, request, err)
		return
	}

	writeResult(server, writer, request, server.api.GetDeliveredPayloads(
		request.Context(), params,
	))
}

func (server *Server) getReceivedBids(writer http.ResponseWriter, request *http.Request) {
	params, err := relaytypes.GetReceivedBidsQueryParamsFromValues(request.URL.Query())
	if err != nil {
		server.invalidParams(writer, request, err)
		return
	}

	writeResult(server, writer, request, server.api.GetReceivedBids(
		request.Context(), params,
	))
}

func (server *Server) getValidatorRegistration(
	writer http.ResponseWriter, request *http.Request,
) {
	params, err := relaytypes.GetValidatorRegistrationQueryParamsFromValues(
		request.URL.Query(),
	)
	if err != nil {
		server.invalidParams(writer, request, err)
		return
	}

	writeResult(server, writer, request, server.api.GetValidatorRegistration(
		request.Context(), params,
	))
}
