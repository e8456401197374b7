package relaytypes

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	ssz "github.com/ferranbt/fastssz"
	"golang.org/x/xerrors"
)

// Limits from the mainnet preset.
const (
	maxExtraDataBytes            = 32
	maxTransactionsPerPayload    = 1048576
	maxBytesPerTransaction       = 1073741824
	maxWithdrawalsPerPayload     = 16
	maxDepositRequestsPerPayload = 8192
	maxWithdrawalRequests        = 16
	maxConsolidationRequests     = 2
)

const offsetLength = 4

// sszWriter lays out an SSZ container. Fixed-size fields and offsets go to the fixed
// part in declaration order; variable-size fields are appended after it in the same
// order.
type sszWriter struct {
	fixedSize int
	fixed     []byte
	variable  []byte
}

func newSSZWriter(fixedSize int) *sszWriter {
	return &sszWriter{
		fixedSize: fixedSize,
		fixed:     make([]byte, 0, fixedSize),
	}
}

func (writer *sszWriter) putBytes(value []byte) {
	writer.fixed = append(writer.fixed, value...)
}

func (writer *sszWriter) putUint64(value uint64) {
	writer.fixed = ssz.MarshalUint64(writer.fixed, value)
}

func (writer *sszWriter) putUint256(value *Uint256) {
	writer.fixed = value.marshalSSZTo(writer.fixed)
}

// Writes the offset of a variable-size field and queues its encoded bytes.
func (writer *sszWriter) putDynamic(value []byte) {
	writer.fixed = ssz.WriteOffset(writer.fixed, writer.fixedSize+len(writer.variable))
	writer.variable = append(writer.variable, value...)
}

func (writer *sszWriter) finish(dst []byte) ([]byte, error) {
	if len(writer.fixed) != writer.fixedSize {
		return nil, xerrors.Errorf(
			"fixed part is %v bytes, expected %v", len(writer.fixed), writer.fixedSize,
		)
	}
	dst = append(dst, writer.fixed...)
	return append(dst, writer.variable...), nil
}

// sszReader walks the fixed part of an SSZ container, then splits the variable part
// using the offsets collected on the way.
type sszReader struct {
	buf       []byte
	fixedSize int
	position  int
	offsets   []int
	sections  [][]byte
	next      int
}

// Fixed-size containers must match fixedSize exactly; containers with variable-size
// fields must be at least that long.
func newSSZReader(buf []byte, fixedSize int, dynamic bool) (*sszReader, error) {
	if len(buf) < fixedSize || (!dynamic && len(buf) != fixedSize) {
		return nil, ssz.ErrSize
	}
	return &sszReader{buf: buf, fixedSize: fixedSize}, nil
}

func (reader *sszReader) take(length int) []byte {
	value := reader.buf[reader.position : reader.position+length]
	reader.position += length
	return value
}

func (reader *sszReader) getBytes(dst []byte) {
	copy(dst, reader.take(len(dst)))
}

func (reader *sszReader) getUint64() uint64 {
	return ssz.UnmarshallUint64(reader.take(8))
}

func (reader *sszReader) getUint256(value *Uint256) {
	value.unmarshalSSZ(reader.take(uint256Length))
}

func (reader *sszReader) getOffset() {
	reader.offsets = append(reader.offsets, int(ssz.ReadOffset(reader.take(offsetLength))))
}

// split checks the collected offsets and cuts the variable part into one section per
// variable-size field. The first offset has to point exactly at the end of the fixed
// part, which is what makes bytes of a container with a different layout fail here.
func (reader *sszReader) split() error {
	if reader.position != reader.fixedSize {
		return xerrors.Errorf(
			"read %v fixed bytes, expected %v", reader.position, reader.fixedSize,
		)
	}

	if len(reader.offsets) == 0 {
		if len(reader.buf) != reader.fixedSize {
			return ssz.ErrSize
		}
		return nil
	}

	if reader.offsets[0] != reader.fixedSize {
		return ssz.ErrOffset
	}

	for index, offset := range reader.offsets {
		end := len(reader.buf)
		if index+1 < len(reader.offsets) {
			end = reader.offsets[index+1]
		}
		if end > len(reader.buf) || offset > end {
			return ssz.ErrOffset
		}
		reader.sections = append(reader.sections, reader.buf[offset:end])
	}

	return nil
}

func (reader *sszReader) section() []byte {
	value := reader.sections[reader.next]
	reader.next++
	return value
}

// Byte lists

func marshalByteList(value []byte, max int, name string) ([]byte, error) {
	if len(value) > max {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrBytesLength)
	}
	return value, nil
}

func unmarshalByteList(section []byte, max int, name string) (hexutil.Bytes, error) {
	if len(section) > max {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrBytesLength)
	}
	return append(hexutil.Bytes{}, section...), nil
}

func byteListsSize(values []hexutil.Bytes) int {
	size := 0
	for _, value := range values {
		size += offsetLength + len(value)
	}
	return size
}

// A list of variable-size items starts with one offset per item, relative to the start
// of the list.
func marshalByteLists(
	values []hexutil.Bytes, maxItems int, maxItemLength int, name string,
) ([]byte, error) {
	if len(values) > maxItems {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrListTooBig)
	}

	encoded := make([]byte, 0, byteListsSize(values))
	offset := offsetLength * len(values)
	for _, value := range values {
		encoded = ssz.WriteOffset(encoded, offset)
		offset += len(value)
	}
	for index, value := range values {
		if len(value) > maxItemLength {
			return nil, xerrors.Errorf("%v[%v]: %w", name, index, ssz.ErrBytesLength)
		}
		encoded = append(encoded, value...)
	}

	return encoded, nil
}

func unmarshalByteLists(
	section []byte, maxItems int, maxItemLength int, name string,
) ([]hexutil.Bytes, error) {
	if len(section) == 0 {
		return []hexutil.Bytes{}, nil
	}
	if len(section) < offsetLength {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrOffset)
	}

	count, err := ssz.DivideInt2(int(ssz.ReadOffset(section[0:offsetLength])), offsetLength, maxItems)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", name, err)
	}
	if count == 0 || len(section) < count*offsetLength {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrOffset)
	}

	values := make([]hexutil.Bytes, count)
	for index := range values {
		start := int(ssz.ReadOffset(section[index*offsetLength:]))
		end := len(section)
		if index+1 < count {
			end = int(ssz.ReadOffset(section[(index+1)*offsetLength:]))
		}
		if start < count*offsetLength || end > len(section) || start > end {
			return nil, xerrors.Errorf("%v[%v]: %w", name, index, ssz.ErrOffset)
		}

		values[index], err = unmarshalByteList(section[start:end], maxItemLength, name)
		if err != nil {
			return nil, err
		}
	}

	return values, nil
}

// Lists of fixed-size containers

func marshalFixedList[T any](
	dst []byte,
	items []T,
	maxItems int,
	name string,
	marshal func(*T, []byte) ([]byte, error),
) ([]byte, error) {
	if len(items) > maxItems {
		return nil, xerrors.Errorf("%v: %w", name, ssz.ErrListTooBig)
	}

	var err error
	for index := range items {
		if dst, err = marshal(&items[index], dst); err != nil {
			return nil, xerrors.Errorf("%v[%v]: %w", name, index, err)
		}
	}
	return dst, nil
}

func unmarshalFixedList[T any](
	section []byte,
	itemSize int,
	maxItems int,
	name string,
	unmarshal func(*T, []byte) error,
) ([]T, error) {
	count, err := ssz.DivideInt2(len(section), itemSize, maxItems)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", name, err)
	}

	items := make([]T, count)
	for index := range items {
		item := section[index*itemSize : (index+1)*itemSize]
		if err := unmarshal(&items[index], item); err != nil {
			return nil, xerrors.Errorf("%v[%v]: %w", name, index, err)
		}
	}
	return items, nil
}
