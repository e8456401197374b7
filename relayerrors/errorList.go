package relayerrors

// Base Error. Used when a generic error is returned by a relay.
var APIError = NewErrorType(
	"APIError",
	1000,
	502,
)

// Route does not implement HTTP method (GET, POST, PUT, etc.)
var InvalidMethodError = NewErrorType(
	"InvalidMethodError",
	1001,
	405,
)

// Error Occurred when Reading / validating Request Data.
var RequestValidationError = NewErrorType(
	"RequestValidationError",
	1003,
	400,
)

// Sent back when the server fails in a way no handler accounted for.
var ServerError = NewErrorType(
	"ServerError",
	1006,
	500,
)

// Request body declared a content type with no decoder.
var UnsupportedMediaTypeError = NewErrorType(
	"UnsupportedMediaTypeError",
	1007,
	415,
)

// Request body could not be decoded as any schema it may hold.
var RequestDecodeError = NewErrorType(
	"RequestDecodeError",
	1008,
	400,
)

// Response body could not be serialized.
var SerializationError = NewErrorType(
	"SerializationError",
	1009,
	500,
)

// No route or record matched the request.
var NotFoundError = NewErrorType(
	"NotFoundError",
	1010,
	404,
)

// Request body is larger than the server accepts.
var PayloadTooLargeError = NewErrorType(
	"PayloadTooLargeError",
	1011,
	413,
)

// List of default error definitions. When two share an HTTP code, the earlier one is
// picked for that code.
var ErrorList = [9]*ErrorType{
	APIError,
	InvalidMethodError,
	RequestValidationError,
	ServerError,
	UnsupportedMediaTypeError,
	RequestDecodeError,
	SerializationError,
	NotFoundError,
	PayloadTooLargeError,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType)
	for _, errorType := range ErrorList {
		index[errorType.apiCode] = errorType
	}
	return index
}

// Used to make ErrorTypeHTTPIndex.
func makeDefaultErrorHTTPIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType)
	for _, errorType := range ErrorList {
		if _, ok := index[errorType.httpCode]; !ok {
			index[errorType.httpCode] = errorType
		}
	}
	return index
}

// ApiCode:*ErrorType indexing of default errors.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()

// HttpCode:*ErrorType indexing of default errors.
var ErrorTypeHTTPIndex = makeDefaultErrorHTTPIndex()
