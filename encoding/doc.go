// Decode and encode relay message bodies for any supported mimetype.
/*
The relay accepts builder submissions as either JSON or SSZ, and neither format says
which schema generation produced the payload. This package holds the machinery that
turns such a body into a typed value:

1. A ContentEngine maps a declared mimetype to a registered Decoder or Encoder, so
handlers never call a format-specific function directly.

2. Receivers whose concrete shape is only known after decoding implement Untagged.
The JSON decoder matches each variant's field layout in turn, and the SSZ decoder
probes each variant's structural decode from newest to oldest (see ProbeSSZ).

3. Responses are always encoded as JSON. Untagged values nested inside a response are
written as their active variant through a JSON extension.
*/
package encoding
