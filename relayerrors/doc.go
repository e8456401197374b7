/*
Relay API error model definition and default relay errors.

Errors raised by the HTTP surface itself, rather than by the builder or data
implementations behind it, share one model so the server and client agree on how
they are written and read back.

This package defines two main objects for handing errors:

  - ErrorType defines an error type.
  - Error is an instance of an error which contains an ErrorType.

# Default ErrorType Variables

Several pointers to ErrorType definitions are included in this package. Each carries
the HTTP status it is written with.

# Wire Format

An Error is written as a relaytypes.ErrorResponse body. The error name, api code and
id additionally go into the error-name, error-code and error-id response headers,
which the client uses to rebuild the same ErrorType.
*/
package relayerrors
