package relaytypes

import (
	"strconv"
)

// ErrorResponse is the body of every failed relay API call.
type ErrorResponse struct {
	Code    uint16 `json:"code"`
	Message string `json:"message"`
	// Only sent when the server exposes diagnostics.
	Stacktraces []string `json:"stacktraces,omitempty"`
}

func (response *ErrorResponse) Error() string {
	return strconv.Itoa(int(response.Code)) + " - " + response.Message
}

/*
Response is the result of a relay API operation: either a success value or an
ErrorResponse, never both. Handlers build one with Success or Failure and the server
writes it, reading the status code from the error arm only.
*/
type Response[T any] struct {
	value   T
	failure *ErrorResponse
}

// Success returns a response holding value.
func Success[T any](value T) Response[T] {
	return Response[T]{value: value}
}

// Failure returns a response holding errResponse.
func Failure[T any](errResponse ErrorResponse) Response[T] {
	return Response[T]{failure: &errResponse}
}

// IsError returns true if the response holds an ErrorResponse.
func (response Response[T]) IsError() bool {
	return response.failure != nil
}

// Unpack returns the success value, or the error when the response holds one.
func (response Response[T]) Unpack() (T, *ErrorResponse) {
	return response.value, response.failure
}

// Builder API responses.
type (
	GetValidatorsResponse = Response[[]*ValidatorsResponse]
	SubmitBlockResponse   = Response[*FullPayloadContents]
)

// Data API responses.
type (
	GetDeliveredPayloadsResponse     = Response[[]*BidTraceV2WithTimestamp]
	GetReceivedBidsResponse          = Response[[]*BidTraceV2]
	GetValidatorRegistrationResponse = Response[*SignedValidatorRegistration]
)
