package mockrelay

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Config seeds a Relay.
type Config struct {
	// Proposers the relay schedules, one per slot.
	Validators []ValidatorConfig `yaml:"validators"`
	// Upper bound on the limit query parameter of the data API. Zero uses
	// DefaultMaxLimit.
	MaxLimit uint64 `yaml:"max_limit"`
}

// ValidatorConfig is one scheduled proposer and its signed registration. Byte fields
// are 0x prefixed hex.
type ValidatorConfig struct {
	Slot           uint64 `yaml:"slot"`
	ValidatorIndex uint64 `yaml:"validator_index"`
	Pubkey         string `yaml:"pubkey"`
	FeeRecipient   string `yaml:"fee_recipient"`
	GasLimit       uint64 `yaml:"gas_limit"`
	Timestamp      uint64 `yaml:"timestamp"`
	Signature      string `yaml:"signature"`
}

// LoadConfig reads a yaml config from reader.
func LoadConfig(reader io.Reader) (Config, error) {
	config := Config{}
	err := yaml.NewDecoder(reader).Decode(&config)
	if err != nil && !xerrors.Is(err, io.EOF) {
		return Config{}, xerrors.Errorf("error reading relay config: %w", err)
	}
	return config, nil
}

// LoadConfigFile reads a yaml config from the file at path.
func LoadConfigFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, xerrors.Errorf("error opening relay config: %w", err)
	}
	defer file.Close()

	return LoadConfig(file)
}

// Converts the entry to its API form.
func (validator ValidatorConfig) toResponse() (*relaytypes.ValidatorsResponse, error) {
	entry := &relaytypes.ValidatorsResponse{
		Slot:           relaytypes.Slot(validator.Slot),
		ValidatorIndex: relaytypes.QuotedUint64(validator.ValidatorIndex),
	}

	message := &entry.Entry.Message
	message.GasLimit = relaytypes.QuotedUint64(validator.GasLimit)
	message.Timestamp = relaytypes.QuotedUint64(validator.Timestamp)

	if err := message.Pubkey.UnmarshalText([]byte(validator.Pubkey)); err != nil {
		return nil, xerrors.Errorf("pubkey: %w", err)
	}
	if !common.IsHexAddress(validator.FeeRecipient) {
		return nil, xerrors.Errorf("fee_recipient: invalid address '%v'", validator.FeeRecipient)
	}
	message.FeeRecipient = common.HexToAddress(validator.FeeRecipient)

	err := entry.Entry.Signature.UnmarshalText([]byte(validator.Signature))
	if err != nil {
		return nil, xerrors.Errorf("signature: %w", err)
	}

	return entry, nil
}
