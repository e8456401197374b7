package encoding

import (
	"bytes"
	"io"

	ssz "github.com/ferranbt/fastssz"
	"golang.org/x/xerrors"
)

// SSZ Encoder for reading and writing application/octet-stream bodies.
type sszEncoder struct{}

func (encoder *sszEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	marshaler, ok := content.(ssz.Marshaler)
	if !ok {
		return xerrors.Errorf("content of type %T cannot be encoded as ssz", content)
	}

	encoded, err := marshaler.MarshalSSZ()
	if err != nil {
		return err
	}

	_, err = writer.Write(encoded)
	return err
}

func (encoder *sszEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	contentBuffer := new(bytes.Buffer)
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return err
	}

	switch receiver := contentReceiver.(type) {
	case Untagged:
		variant, err := ProbeSSZ(contentBuffer.Bytes(), receiver.Variants())
		if err != nil {
			return err
		}
		return receiver.SetVariant(variant)
	case ssz.Unmarshaler:
		return receiver.UnmarshalSSZ(contentBuffer.Bytes())
	default:
		return xerrors.Errorf(
			"receiver of type %T cannot be decoded from ssz", contentReceiver,
		)
	}
}
