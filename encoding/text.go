package encoding

import (
	"bytes"
	stdencoding "encoding"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// Reads and writes text/plain bodies, such as the plain error pages proxies put in
// front of a relay answer with.
type textEncoder struct{}

// Writes content as text. Values with a text form, like slots and hashes, use it.
func (handler *textEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	var text []byte

	switch value := content.(type) {
	case stdencoding.TextMarshaler:
		marshalled, err := value.MarshalText()
		if err != nil {
			return err
		}
		text = marshalled
	case error:
		text = []byte(value.Error())
	default:
		text = []byte(fmt.Sprint(content))
	}

	_, err := writer.Write(text)
	return err
}

// Reads the whole body into a *string, a *[]byte or an encoding.TextUnmarshaler.
func (handler *textEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}

	switch receiver := contentReceiver.(type) {
	case *string:
		*receiver = buffer.String()
	case *[]byte:
		*receiver = buffer.Bytes()
	case stdencoding.TextUnmarshaler:
		return receiver.UnmarshalText(buffer.Bytes())
	default:
		return xerrors.Errorf("cannot decode text into %T", contentReceiver)
	}

	return nil
}
