package relaytypes

import (
	"encoding/binary"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"golang.org/x/xerrors"
)

const (
	PublicKeyLength = 48
	SignatureLength = 96
	BloomLength     = 256
	uint256Length   = 32
)

// Slot is a beacon chain slot number. Like every 64-bit integer in the relay API it is
// written as a decimal string.
type Slot uint64

func (slot Slot) MarshalText() ([]byte, error) {
	return QuotedUint64(slot).MarshalText()
}

func (slot *Slot) UnmarshalText(input []byte) error {
	return (*QuotedUint64)(slot).UnmarshalText(input)
}

// QuotedUint64 is a uint64 written as a decimal string.
type QuotedUint64 uint64

func (value QuotedUint64) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(value), 10)), nil
}

func (value *QuotedUint64) UnmarshalText(input []byte) error {
	parsed, err := strconv.ParseUint(string(input), 10, 64)
	if err != nil {
		return xerrors.Errorf("invalid quoted uint64 '%s': %w", input, err)
	}
	*value = QuotedUint64(parsed)
	return nil
}

// QuotedInt64 is an int64 written as a decimal string.
type QuotedInt64 int64

func (value QuotedInt64) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(value), 10)), nil
}

func (value *QuotedInt64) UnmarshalText(input []byte) error {
	parsed, err := strconv.ParseInt(string(input), 10, 64)
	if err != nil {
		return xerrors.Errorf("invalid quoted int64 '%s': %w", input, err)
	}
	*value = QuotedInt64(parsed)
	return nil
}

// Uint256 holds wei amounts. It is written as a decimal string in JSON and as 32
// little-endian bytes in SSZ.
type Uint256 uint256.Int

// NewUint256 returns value as a Uint256.
func NewUint256(value uint64) Uint256 {
	return Uint256(*uint256.NewInt(value))
}

// Big returns a copy of the value as a big.Int.
func (value Uint256) Big() *big.Int {
	asInt := uint256.Int(value)
	return asInt.ToBig()
}

// Cmp compares two values, returning -1, 0 or 1.
func (value Uint256) Cmp(other Uint256) int {
	asInt, otherInt := uint256.Int(value), uint256.Int(other)
	return asInt.Cmp(&otherInt)
}

func (value Uint256) MarshalText() ([]byte, error) {
	return []byte(value.Big().String()), nil
}

func (value *Uint256) UnmarshalText(input []byte) error {
	parsed, ok := new(big.Int).SetString(string(input), 10)
	if !ok || parsed.Sign() < 0 {
		return xerrors.Errorf("invalid quoted uint256 '%s'", input)
	}

	asInt, overflow := uint256.FromBig(parsed)
	if overflow {
		return xerrors.Errorf("quoted uint256 '%s' overflows 256 bits", input)
	}

	*value = Uint256(*asInt)
	return nil
}

// Limbs of uint256.Int are stored least significant first, which is already SSZ
// order.
func (value *Uint256) marshalSSZTo(dst []byte) []byte {
	var encoded [uint256Length]byte
	for limb := 0; limb < 4; limb++ {
		binary.LittleEndian.PutUint64(encoded[limb*8:], value[limb])
	}
	return append(dst, encoded[:]...)
}

func (value *Uint256) unmarshalSSZ(buf []byte) {
	for limb := 0; limb < 4; limb++ {
		value[limb] = binary.LittleEndian.Uint64(buf[limb*8:])
	}
}

// PublicKey is a compressed BLS12-381 public key.
type PublicKey [PublicKeyLength]byte

func (key PublicKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(key[:]).MarshalText()
}

func (key *PublicKey) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("PublicKey", input, key[:])
}

func (key PublicKey) String() string {
	return hexutil.Encode(key[:])
}

// Signature is a compressed BLS12-381 signature.
type Signature [SignatureLength]byte

func (signature Signature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(signature[:]).MarshalText()
}

func (signature *Signature) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Signature", input, signature[:])
}

// Bloom is the execution block logs bloom filter.
type Bloom [BloomLength]byte

func (bloom Bloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(bloom[:]).MarshalText()
}

func (bloom *Bloom) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bloom", input, bloom[:])
}
