package encoding

import (
	"io"
	"reflect"
	"sync"

	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// ErrUnknownMimeType is returned when decoding a body with no declared mimetype into
// anything but a string.
var ErrUnknownMimeType = xerrors.New("mimetype is unknown")

// UnsupportedError is returned when no encoder or decoder is registered for a
// mimetype.
type UnsupportedError struct {
	MimeType mimetype.MimeType
	// True when encoding, false when decoding.
	Encode bool
}

func (err *UnsupportedError) Error() string {
	if err.Encode {
		return "no encoder for " + string(err.MimeType)
	}
	return "no decoder for " + string(err.MimeType)
}

/*
ContentEngine details the contract for a content encoding engine. The server decodes
request bodies and the offload pool encodes responses through the same engine, so
implementations must be safe for concurrent use.
*/
type ContentEngine interface {
	// Registers an encoder for a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)

	// Registers a decoder for a given mimetype.
	SetDecoder(mimeType mimetype.MimeType, decoder Decoder)

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered decoder for the mimetype.
	HandlesDecode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered encoder AND decoder for the mimetype.
	Handles(mimeType mimetype.MimeType) bool

	// Decode mimeType content from reader into contentReceiver. reader is closed
	// afterwards if it is an io.Closer.
	Decode(
		mimeType mimetype.MimeType,
		contentReceiver interface{},
		reader io.Reader,
	) error

	// Encode content as mimeType to writer.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
	) error
}

/*
Engine is the default implementation of the ContentEngine interface.

# Instantiation

Use NewContentEngine() to create a new Engine.

# Default Mimetypes

  - text/plain
  - application/json
  - application/octet-stream (SSZ)

# JSON

Engine uses the codec library to encode/decode json
(https://godoc.org/github.com/ugorji/go/codec). Additional json extensions can be
registered through AddJSONExtensions() by passing a slice of JSONExtensionOpts
objects. UntaggedExtension builds one for types implementing Untagged.

# SSZ

Content must implement the fastssz Marshaler / Unmarshaler interfaces. Untagged
receivers are resolved with ProbeSSZ.

# Unknown Mimetypes

Encoding with mimetype.UNKNOWN writes strings as text and everything else as JSON.
Decoding with mimetype.UNKNOWN only works for string receivers.

# Panics

If an encoder or decoder panics during execution, that panic is caught and returned as
an error.
*/
type Engine struct {
	lock     sync.RWMutex
	encoders map[mimetype.MimeType]Encoder
	decoders map[mimetype.MimeType]Decoder

	// JSON handle for default JSON encoder
	jsonHandle *codec.JsonHandle
	// Engine to pass to Encoder.Encode() and Decoder.Decode() methods.
	passedEngine ContentEngine
}

// Change the engine passed into Encoder.Encode() and Decoder.Decode(), for types
// embedding Engine.
func (engine *Engine) SetPassedEngine(newEngine ContentEngine) {
	engine.lock.Lock()
	defer engine.lock.Unlock()
	engine.passedEngine = newEngine
}

func (engine *Engine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.lock.Lock()
	defer engine.lock.Unlock()
	engine.encoders[mimeType] = encoder
}

func (engine *Engine) SetDecoder(mimeType mimetype.MimeType, decoder Decoder) {
	engine.lock.Lock()
	defer engine.lock.Unlock()
	engine.decoders[mimeType] = decoder
}

func (engine *Engine) HandlesEncode(mimeType mimetype.MimeType) bool {
	encoder, _ := engine.lookup(mimeType, true)
	return encoder != nil
}

func (engine *Engine) HandlesDecode(mimeType mimetype.MimeType) bool {
	_, decoder := engine.lookup(mimeType, false)
	return decoder != nil
}

func (engine *Engine) Handles(mimeType mimetype.MimeType) bool {
	return engine.HandlesEncode(mimeType) && engine.HandlesDecode(mimeType)
}

// Returns the registered encoder when encode is true, the decoder otherwise.
func (engine *Engine) lookup(
	mimeType mimetype.MimeType, encode bool,
) (Encoder, Decoder) {
	engine.lock.RLock()
	defer engine.lock.RUnlock()

	if encode {
		return engine.encoders[mimeType], nil
	}
	return nil, engine.decoders[mimeType]
}

func (engine *Engine) getEngine() ContentEngine {
	engine.lock.RLock()
	defer engine.lock.RUnlock()

	if engine.passedEngine != nil {
		return engine.passedEngine
	}
	return engine
}

// Runs an encoder or decoder, returning a panic as an error.
func guard(operation string, run func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = xerrors.Errorf("panic during %v: %v", operation, recovered)
		}
	}()
	return run()
}

// Mimetype for content encoded with no declared mimetype.
func defaultEncodeMimeType(content interface{}) mimetype.MimeType {
	switch content.(type) {
	case string, *string:
		return mimetype.TEXT
	default:
		return mimetype.JSON
	}
}

func (engine *Engine) Decode(
	mimeType mimetype.MimeType,
	contentReceiver interface{},
	reader io.Reader,
) error {
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	if mimeType == mimetype.UNKNOWN {
		if _, ok := contentReceiver.(*string); !ok {
			return ErrUnknownMimeType
		}
		mimeType = mimetype.TEXT
	}

	_, decoder := engine.lookup(mimeType, false)
	if decoder == nil {
		return &UnsupportedError{MimeType: mimeType}
	}

	passEngine := engine.getEngine()
	err := guard("decode", func() error {
		return decoder.Decode(passEngine, reader, contentReceiver)
	})
	if err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}

	return nil
}

func (engine *Engine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
) error {
	if mimeType == mimetype.UNKNOWN {
		mimeType = defaultEncodeMimeType(content)
	}

	encoder, _ := engine.lookup(mimeType, true)
	if encoder == nil {
		return &UnsupportedError{MimeType: mimeType, Encode: true}
	}

	passEngine := engine.getEngine()
	err := guard("encode", func() error {
		return encoder.Encode(passEngine, writer, content)
	})
	if err != nil {
		return xerrors.Errorf("encode err: %w", err)
	}
	return nil
}

// Returns the internal codec.JsonHandle used by the json encoder/decoder.
func (engine *Engine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Adds JSON extensions to the handle. Must be called before the engine is shared.
func (engine *Engine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, 1, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension to content engine: %w", err,
			)
		}
	}
	return nil
}

func NewContentEngine() (*Engine, error) {
	// Schemaless objects decode to string keyed maps so untagged variants can be
	// matched against their field names.
	jsonHandle := &codec.JsonHandle{}
	jsonHandle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	engine := &Engine{
		encoders:   make(map[mimetype.MimeType]Encoder),
		decoders:   make(map[mimetype.MimeType]Decoder),
		jsonHandle: jsonHandle,
	}

	handlers := map[mimetype.MimeType]interface {
		Encoder
		Decoder
	}{
		mimetype.JSON: &jsonEncoder{},
		mimetype.SSZ:  &sszEncoder{},
		mimetype.TEXT: &textEncoder{},
	}
	for mimeType, handler := range handlers {
		engine.SetEncoder(mimeType, handler)
		engine.SetDecoder(mimeType, handler)
	}

	return engine, nil
}
