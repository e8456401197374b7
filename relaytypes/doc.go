/*
Package relaytypes holds the wire types of the relay API and their JSON and SSZ forms.

# Bid traces

BidTraceV1 is the nine field message builders sign: slot, parent and block hash,
builder and proposer keys, fee recipient, gas limit, gas used and value. Its SSZ form is
236 bytes. BidTraceV2 adds block_number and num_tx, and is only returned by the data
API.

Some relay clients put block_number and num_tx in the signed message as well, for a
252 byte message. Their SSZ submissions are rejected here, since the extra counters sit
where the payload offset is expected, and their JSON bodies are rejected for the two
unknown fields.

# Generations

Submissions and payloads come in Bellatrix, Capella, Deneb and Electra layouts with no
version tag on the wire. VersionedSubmitBlockRequest and VersionedExecutionPayload
discover the generation while decoding, trying the newest layout first.
*/
package relaytypes
