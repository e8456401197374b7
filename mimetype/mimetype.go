// Enumeration-like type for content mimetypes.
package mimetype

import (
	"strings"
)

/*
MimeType is used to enumerate the representations a relay request body can arrive in.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON = MimeType("application/json")
	// SSZ payloads travel as raw octet streams with no schema tag.
	SSZ  = MimeType("application/octet-stream")
	TEXT = MimeType("text/plain")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// Media types a declared content type is matched against by prefix, so parameters
// like "; charset=utf-8" do not change the result.
var prefixMimeTypes = []MimeType{JSON, SSZ}

// HeaderName is the header a body's mimetype is declared in.
const HeaderName = "Content-Type"

// Read side of http.Header.
type headerFetcher interface {
	Get(string) string
}

// Write side of http.Header.
type headerSetter interface {
	Set(string, string)
}

// Extract content type from a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get(HeaderName))
}

// SetHeader declares mimeType as the body's content type. UNKNOWN leaves the header
// untouched.
func SetHeader(headers headerSetter, mimeType MimeType) {
	if mimeType == UNKNOWN {
		return
	}
	headers.Set(HeaderName, string(mimeType))
}

/*
Convert MimeType from a string. Ignores case. A value that begins with one of the
structured types is reported as that type, so all of the following will yield
"mimetype.JSON":

  - "application/json"
  - "application/JSON"
  - "application/json; charset=utf-8"

Any other value is returned lowercased so the caller can decide whether to reject it.
*/
func FromString(incoming string) MimeType {
	incoming = strings.ToLower(strings.TrimSpace(incoming))

	if incoming == "" {
		return UNKNOWN
	}

	for _, mimeType := range prefixMimeTypes {
		if strings.HasPrefix(incoming, string(mimeType)) {
			return mimeType
		}
	}

	bare := strings.TrimSpace(strings.Split(incoming, ";")[0])
	if bare == "text/plain" || bare == "text" {
		return TEXT
	}

	return MimeType(incoming)
}

// IsObject reports whether values of mimeType carry structured objects, as opposed to
// raw text.
func IsObject(mimeType MimeType) bool {
	for _, objectType := range prefixMimeTypes {
		if mimeType == objectType {
			return true
		}
	}
	return false
}
