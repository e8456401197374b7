package relayerrors

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/illuscio-dev/relayapi-go/relaytypes"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Interface for object that can set header information.
type headerSetter interface {
	Set(key string, value string)
}

/*
ErrorType defines a TYPE of error that CAN be returned by the relay API.

Each ErrorType should have a unique Name and APICode. Codes 1000-1999 are reserved for
the default error definitions.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewErrorType()
*/
type ErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number to identify the error type.
	apiCode int

	// HTTP code that should be returned when this error type is returned.
	httpCode int
}

// Returns a new relay error to be returned by the route handler or panicked.
func (errorType *ErrorType) New(message string, source error) *Error {
	relayError := Error{
		ErrorType:   errorType,
		Message:     message,
		ID:          uuid.NewV4(),
		sourceErr:   source,
		sourceStack: debug.Stack(),
		frame:       xerrors.Caller(1),
	}
	return &relayError
}

// Creates a new error that is immediately passed to a panic.
func (errorType *ErrorType) Panic(message string, source error) {
	relayError := errorType.New(message, source)
	panic(relayError)
}

// Unique human-readable name of the error type.
func (errorType *ErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type.
func (errorType *ErrorType) APICode() int {
	return errorType.apiCode
}

// HTTP code that should be returned when this error type is returned.
func (errorType *ErrorType) HTTPCode() int {
	return errorType.httpCode
}

// Returns a copy of the error type with the given http code replaced.
func (errorType *ErrorType) WithHTTPCode(newHTTPCode int) *ErrorType {
	return &ErrorType{
		name:     errorType.name,
		apiCode:  errorType.apiCode,
		httpCode: newHTTPCode,
	}
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *ErrorType) Error() string {
	return errorType.name +
		" (" + strconv.Itoa(errorType.apiCode) + ")"
}

// Used to return a specific error instance.
type Error struct {
	// The type of error we are returning.
	*ErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// Stacktraces sent by a remote server, if any.
	Diagnostics []string

	// If this error was returned because of another error, the original error is stored
	// here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType. Some
// errors may have multiple http codes possible, se we can't just compare ErrorType
// field equality directly.
func (relayError *Error) IsType(errorType *ErrorType) bool {
	return relayError.ErrorType.Error() == errorType.Error()
}

// Error string to conform to builtin error interface.
func (relayError *Error) Error() string {
	return relayError.ErrorType.Error() + " - " + relayError.Message
}

// Implements xerrors.Wrapper.
func (relayError *Error) Unwrap() error {
	return relayError.sourceErr
}

// Implements xerrors.Formatter so %+v prints where the error was created.
func (relayError *Error) FormatError(printer xerrors.Printer) error {
	printer.Print(relayError.Error())
	relayError.frame.Format(printer)
	return relayError.sourceErr
}

func (relayError *Error) Format(state fmt.State, verb rune) {
	xerrors.FormatError(relayError, state, verb)
}

// More verbose error message that includes a debug.Stack() and source error
// information. This is not part of the Error() or Message by default since it may
// contain sensitive information that is not desirable to return to the client.
func (relayError *Error) LogMessage() string {
	loggerMessage := fmt.Sprint(
		// print the error
		"\nMESSAGE: ",
		relayError.Error(),
		"\nORIGINAL: ",
		relayError.sourceErr,
		"\nPANIC STACK:\n",
		string(relayError.sourceStack),
	)
	return loggerMessage
}

// Fields to attach to log entries about this error.
func (relayError *Error) LogFields() logrus.Fields {
	fields := logrus.Fields{
		"error_name": relayError.name,
		"error_code": relayError.apiCode,
		"error_id":   relayError.ID.String(),
	}
	if relayError.sourceErr != nil {
		fields[logrus.ErrorKey] = relayError.sourceErr
	}
	return fields
}

// Status returns the HTTP status to write the error with.
func (relayError *Error) Status() int {
	if relayError.httpCode < 100 || relayError.httpCode > 999 {
		return 500
	}
	return relayError.httpCode
}

/*
Response converts the error to a response body. The message is always sent. When
exposeDiagnostics is true the error id, the source error chain and the stack where the
error was created are added as stacktraces; they may contain internal details and are
off by default.
*/
func (relayError *Error) Response(exposeDiagnostics bool) relaytypes.ErrorResponse {
	response := relaytypes.ErrorResponse{
		Code:    uint16(relayError.Status()),
		Message: relayError.Message,
	}
	if !exposeDiagnostics {
		return response
	}

	stacktraces := []string{"error id: " + relayError.ID.String()}
	for source := relayError.sourceErr; source != nil; source = xerrors.Unwrap(source) {
		stacktraces = append(stacktraces, "caused by: "+source.Error())
	}
	for _, line := range strings.Split(string(relayError.sourceStack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			stacktraces = append(stacktraces, line)
		}
	}
	response.Stacktraces = append(stacktraces, relayError.Diagnostics...)

	return response
}

// Writes the error type and id to an object which implements a
// Set(key string, value string) method like http.Header.
func (relayError *Error) ToHeader(setter headerSetter) {
	setter.Set("error-name", relayError.name)
	setter.Set("error-code", strconv.Itoa(relayError.apiCode))
	setter.Set("error-id", relayError.ID.String())
}
