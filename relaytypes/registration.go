package relaytypes

import (
	"github.com/ethereum/go-ethereum/common"
)

// ValidatorRegistration is the preference a proposer registered with the relay.
type ValidatorRegistration struct {
	FeeRecipient common.Address `json:"fee_recipient"`
	GasLimit     QuotedUint64   `json:"gas_limit"`
	Timestamp    QuotedUint64   `json:"timestamp"`
	Pubkey       PublicKey      `json:"pubkey"`
}

// SignedValidatorRegistration is a registration signed by the proposer.
type SignedValidatorRegistration struct {
	Message   ValidatorRegistration `json:"message"`
	Signature Signature             `json:"signature"`
}

// ValidatorsResponse is one entry of the proposer duties a builder builds for.
type ValidatorsResponse struct {
	Slot           Slot                        `json:"slot"`
	ValidatorIndex QuotedUint64                `json:"validator_index"`
	Entry          SignedValidatorRegistration `json:"entry"`
}

// FullPayloadContents is the payload the relay returns for an accepted submission.
type FullPayloadContents = VersionedExecutionPayload
