package encoding

import (
	"io"
)

// Encoder writes content in one mimetype. The engine running the encoder is passed
// in, so encoders can reach engine-level settings such as the JSON handle.
type Encoder interface {
	Encode(engine ContentEngine, writer io.Writer, content interface{}) error
}

// Decoder reads one mimetype from reader into contentReceiver. The engine running the
// decoder is passed in the same way as for Encoder.
type Decoder interface {
	Decode(engine ContentEngine, reader io.Reader, contentReceiver interface{}) error
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(engine ContentEngine, writer io.Writer, content interface{}) error

func (encode EncoderFunc) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	return encode(engine, writer, content)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error

func (decode DecoderFunc) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return decode(engine, reader, contentReceiver)
}
