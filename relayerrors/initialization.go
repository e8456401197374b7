package relayerrors

import (
	"strconv"

	"github.com/illuscio-dev/relayapi-go/relaytypes"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

// Returns an error type definition. Each definition should only need to be declared
// once, ensuring consistent error codes and names for the error type across the
// server and its clients.
func NewErrorType(
	name string,
	apiCode int,
	httpCode int,
) *ErrorType {
	relayError := &ErrorType{
		name:     name,
		apiCode:  apiCode,
		httpCode: httpCode,
	}
	return relayError
}

type headerFetcher interface {
	Get(key string) string
}

/*
ErrorTypeFromHeaders reads the error type and id written by Error.ToHeader. If no
error code is in the headers, hasError is returned as false. If an error code is
present but cannot be resolved, hasError is true and err describes the problem.
*/
func ErrorTypeFromHeaders(
	headers headerFetcher,
	errorTypeCodeIndex map[int]*ErrorType,
) (errorType *ErrorType, errorID uuid.UUID, hasError bool, err error) {
	// If there is no error code, then there is no error
	errorCodeStr := headers.Get("error-code")
	if errorCodeStr == "" {
		return nil, uuid.Nil, false, xerrors.New("no error in headers")
	}

	// If the error code is not an int, then there is no error
	errorCode, err := strconv.Atoi(errorCodeStr)
	if err != nil {
		return nil, uuid.Nil, false, xerrors.New("error-code not int")
	}

	if errorTypeCodeIndex == nil {
		return nil, uuid.Nil, true, xerrors.New("no error index provided")
	}
	errorType, ok := errorTypeCodeIndex[errorCode]
	if !ok {
		return nil,
			uuid.Nil,
			true,
			xerrors.New("no known error for code " + errorCodeStr)
	}

	errorID, err = uuid.FromString(headers.Get("error-id"))
	if err != nil {
		return nil, uuid.Nil, true, xerrors.New("error Id is not valid UUID")
	}

	return errorType, errorID, true, nil
}

/*
ErrorFromResponse rebuilds the error a relay answered with. The error type comes from
the error headers when they resolve through errorTypeCodeIndex, otherwise from the
HTTP status. Statuses with no default type become an APIError carrying that status.

body may be nil when the relay did not send a structured error.
*/
func ErrorFromResponse(
	headers headerFetcher,
	status int,
	body *relaytypes.ErrorResponse,
	errorTypeCodeIndex map[int]*ErrorType,
) *Error {
	errorType, errorID, _, err := ErrorTypeFromHeaders(headers, errorTypeCodeIndex)
	if err != nil {
		errorType = ErrorTypeHTTPIndex[status]
		if errorType == nil {
			errorType = APIError.WithHTTPCode(status)
		}
	}

	relayError := errorType.New("", nil)
	if body != nil {
		relayError.Message = body.Message
		relayError.Diagnostics = body.Stacktraces
		relayError.sourceErr = body
	}
	if errorID != uuid.Nil {
		relayError.ID = errorID
	}

	return relayError
}
