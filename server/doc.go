/*
Package server exposes a relay implementation over HTTP.

# Routes

New registers the builder and data routes of the relay API:

	POST /relay/v1/builder/blocks
	GET  /relay/v1/builder/validators
	GET  /relay/v1/data/bidtraces/proposer_payload_delivered
	GET  /relay/v1/data/bidtraces/builder_blocks_received
	GET  /relay/v1/data/validator_registration

# Request bodies

Submissions are accepted as JSON or SSZ, picked by the Content-Type header. The header
is checked before any byte of the body is read, and anything else is rejected with 415.

# Responses

Every response body is JSON. Success is written with 200, and an ErrorResponse with its
own code. Bodies are serialized on an offload.Pool and nothing is written until the
complete body is ready, so a failed serialization still yields a clean 500.
*/
package server
