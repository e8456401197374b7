package encoding

import (
	"bytes"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"
)

// default JSON encoder for Engine.
type jsonEncoder struct{}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	relayEngine := engine.(*Engine)

	// Untagged values are written as their active variant, with no discriminant.
	if untagged, ok := content.(Untagged); ok {
		content = untagged.Variant()
		if content == nil {
			return xerrors.New("untagged value has no active variant")
		}
	}

	jsonEncoder := codec.NewEncoder(writer, relayEngine.jsonHandle)
	return jsonEncoder.Encode(content)
}

func (encoder *jsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	relayEngine := engine.(*Engine)

	if untagged, ok := contentReceiver.(Untagged); ok {
		return encoder.decodeUntagged(relayEngine, reader, untagged)
	}

	jsonDecoder := codec.NewDecoder(reader, relayEngine.jsonHandle)
	return jsonDecoder.Decode(contentReceiver)
}

// Decodes the body once without a schema, then tries each variant's field layout in
// order. The first variant whose layout matches and whose typed decode succeeds is
// stored on the receiver.
func (encoder *jsonEncoder) decodeUntagged(
	relayEngine *Engine, reader io.Reader, receiver Untagged,
) error {
	contentBuffer := new(bytes.Buffer)
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return err
	}
	content := contentBuffer.Bytes()

	var schemaless interface{}
	err := codec.NewDecoderBytes(content, relayEngine.jsonHandle).Decode(&schemaless)
	if err != nil {
		return err
	}

	decodeErr := &DecodeError{}

	for _, variant := range receiver.Variants() {
		err := matchFields(reflect.TypeOf(variant.Receiver).Elem(), schemaless)
		if err == nil {
			err = codec.NewDecoderBytes(content, relayEngine.jsonHandle).
				Decode(variant.Receiver)
		}

		if err != nil {
			decodeErr.Attempts = append(
				decodeErr.Attempts, variant.Name+": "+err.Error(),
			)
			continue
		}

		return receiver.SetVariant(variant)
	}

	return decodeErr
}
