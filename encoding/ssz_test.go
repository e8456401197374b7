package encoding_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"testing"

	ssz "github.com/ferranbt/fastssz"
	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// Counter is a fixed-size SSZ container holding one uint64.
type Counter struct {
	Value uint64
}

func (counter *Counter) SizeSSZ() int {
	return 8
}

func (counter *Counter) MarshalSSZ() ([]byte, error) {
	return counter.MarshalSSZTo(make([]byte, 0, 8))
}

func (counter *Counter) MarshalSSZTo(dst []byte) ([]byte, error) {
	return ssz.MarshalUint64(dst, counter.Value), nil
}

func (counter *Counter) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 8 {
		return ssz.ErrSize
	}
	counter.Value = ssz.UnmarshallUint64(buf)
	return nil
}

// Pair is a fixed-size SSZ container holding two uint64 values.
type Pair struct {
	First  uint64
	Second uint64
}

func (pair *Pair) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 16 {
		return xerrors.Errorf("pair: %w", ssz.ErrSize)
	}
	pair.First = ssz.UnmarshallUint64(buf[:8])
	pair.Second = ssz.UnmarshallUint64(buf[8:])
	return nil
}

// Panics on any input.
type Explosive struct{}

func (explosive *Explosive) UnmarshalSSZ(buf []byte) error {
	panic("boom")
}

// VersionedNumber is an untagged union of Pair and Counter.
type VersionedNumber struct {
	Pair    *Pair
	Counter *Counter
}

func (number *VersionedNumber) Variants() []encoding.Variant {
	return []encoding.Variant{
		{Name: "pair", Receiver: &Pair{}},
		{Name: "counter", Receiver: &Counter{}},
	}
}

func (number *VersionedNumber) SetVariant(variant encoding.Variant) error {
	switch receiver := variant.Receiver.(type) {
	case *Pair:
		*number = VersionedNumber{Pair: receiver}
	case *Counter:
		*number = VersionedNumber{Counter: receiver}
	default:
		return xerrors.Errorf("unexpected variant %T", receiver)
	}
	return nil
}

func (number *VersionedNumber) Variant() interface{} {
	if number.Pair != nil {
		return number.Pair
	}
	if number.Counter != nil {
		return number.Counter
	}
	return nil
}

func TestSSZRoundTrip(test *testing.T) {
	engine := createEngine(test)

	buffer := new(bytes.Buffer)
	require.NoError(test, engine.Encode(mimetype.SSZ, &Counter{Value: 42}, buffer))
	assert.Equal(test, []byte{42, 0, 0, 0, 0, 0, 0, 0}, buffer.Bytes())

	loaded := &Counter{}
	require.NoError(test, engine.Decode(mimetype.SSZ, loaded, buffer))
	assert.Equal(test, uint64(42), loaded.Value)
}

func TestSSZEncodeNotMarshaler(test *testing.T) {
	engine := createEngine(test)

	err := engine.Encode(mimetype.SSZ, &Name{}, new(bytes.Buffer))
	assert.EqualError(
		test,
		err,
		"encode err: content of type *encoding_test.Name cannot be encoded as ssz",
	)
}

func TestSSZDecodeNotUnmarshaler(test *testing.T) {
	engine := createEngine(test)

	err := engine.Decode(mimetype.SSZ, &Name{}, bytes.NewReader([]byte{1}))
	assert.EqualError(
		test,
		err,
		"decode err: receiver of type *encoding_test.Name cannot be decoded from ssz",
	)
}

func TestSSZDecodeUntagged(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	number := &VersionedNumber{}
	err := engine.Decode(mimetype.SSZ, number, bytes.NewReader(make([]byte, 8)))
	require.NoError(test, err)
	assert.Nil(number.Pair)
	assert.Equal(&Counter{}, number.Counter)

	data := append(ssz.MarshalUint64(nil, 1), ssz.MarshalUint64(nil, 2)...)
	err = engine.Decode(mimetype.SSZ, number, bytes.NewReader(data))
	require.NoError(test, err)
	assert.Nil(number.Counter)
	assert.Equal(&Pair{First: 1, Second: 2}, number.Pair)
}

func TestSSZDecodeUntaggedNoMatch(test *testing.T) {
	engine := createEngine(test)

	err := engine.Decode(mimetype.SSZ, &VersionedNumber{}, bytes.NewReader([]byte{1}))
	assert.EqualError(test, err, "decode err: "+ssz.ErrSize.Error())
}

func TestSSZReaderError(test *testing.T) {
	engine := createEngine(test)

	err := engine.Decode(mimetype.SSZ, &Counter{}, brokenReader{})
	assert.EqualError(test, err, "decode err: mock reader error")
}
