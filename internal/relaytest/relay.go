package relaytest

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/illuscio-dev/relayapi-go/mockrelay"
)

// RelayConfig schedules ProposerPubkey for each of slots.
func RelayConfig(slots ...uint64) mockrelay.Config {
	signature := Signature()

	config := mockrelay.Config{}
	for index, slot := range slots {
		config.Validators = append(config.Validators, mockrelay.ValidatorConfig{
			Slot:           slot,
			ValidatorIndex: uint64(1000 + index),
			Pubkey:         ProposerPubkey.String(),
			FeeRecipient:   FeeRecipient().Hex(),
			GasLimit:       30000000,
			Timestamp:      1606824023,
			Signature:      hexutil.Encode(signature[:]),
		})
	}
	return config
}
