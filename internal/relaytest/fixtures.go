// Package relaytest builds relay values for tests.
package relaytest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
)

// Fill writes a byte pattern starting at seed into dst.
func Fill(dst []byte, seed byte) {
	for index := range dst {
		dst[index] = seed + byte(index)
	}
}

// Pubkey returns a public key filled from seed.
func Pubkey(seed byte) relaytypes.PublicKey {
	key := relaytypes.PublicKey{}
	Fill(key[:], seed)
	return key
}

// ProposerPubkey is the proposer every BidTrace is addressed to.
var ProposerPubkey = Pubkey(4)

// FeeRecipient returns the fee recipient every BidTrace pays.
func FeeRecipient() common.Address {
	address := common.Address{}
	Fill(address[:], 5)
	return address
}

// BidTrace returns a bid for slot worth value wei from the builder keyed by
// builderSeed.
func BidTrace(slot relaytypes.Slot, value uint64, builderSeed byte) relaytypes.BidTraceV1 {
	trace := relaytypes.BidTraceV1{
		Slot:                 slot,
		GasLimit:             30000000,
		GasUsed:              12345678,
		Value:                relaytypes.NewUint256(value),
		BuilderPubkey:        Pubkey(builderSeed),
		ProposerPubkey:       ProposerPubkey,
		ProposerFeeRecipient: FeeRecipient(),
	}
	Fill(trace.ParentHash[:], 1)
	Fill(trace.BlockHash[:], builderSeed+byte(slot)+byte(value))
	return trace
}

// PayloadBellatrix returns a payload whose block hash matches trace.
func PayloadBellatrix(trace relaytypes.BidTraceV1) relaytypes.ExecutionPayloadBellatrix {
	payload := relaytypes.ExecutionPayloadBellatrix{
		ParentHash:    trace.ParentHash,
		FeeRecipient:  trace.ProposerFeeRecipient,
		BlockNumber:   19000000 + relaytypes.QuotedUint64(trace.Slot),
		GasLimit:      trace.GasLimit,
		GasUsed:       trace.GasUsed,
		Timestamp:     1709833797,
		ExtraData:     hexutil.Bytes("relayapi"),
		BaseFeePerGas: relaytypes.NewUint256(7),
		BlockHash:     trace.BlockHash,
		Transactions: []hexutil.Bytes{
			{0x02, 0xf8, 0x70, 0x01},
			{0x02, 0xf8, 0x71, 0x02, 0x03},
		},
	}
	Fill(payload.StateRoot[:], 12)
	Fill(payload.ReceiptsRoot[:], 13)
	Fill(payload.LogsBloom[:], 14)
	Fill(payload.PrevRandao[:], 15)
	return payload
}

// PayloadDeneb returns a Deneb payload whose block hash matches trace.
func PayloadDeneb(trace relaytypes.BidTraceV1) relaytypes.ExecutionPayloadDeneb {
	withdrawal := relaytypes.Withdrawal{Index: 1, ValidatorIndex: 352280, Amount: 17000000}
	Fill(withdrawal.Address[:], 20)

	return relaytypes.ExecutionPayloadDeneb{
		ExecutionPayloadCapella: relaytypes.ExecutionPayloadCapella{
			ExecutionPayloadBellatrix: PayloadBellatrix(trace),
			Withdrawals:               []relaytypes.Withdrawal{withdrawal},
		},
		BlobGasUsed:   131072,
		ExcessBlobGas: 262144,
	}
}

// Signature returns a signature filled with a fixed pattern.
func Signature() relaytypes.Signature {
	signature := relaytypes.Signature{}
	Fill(signature[:], 40)
	return signature
}

// SubmissionBellatrix returns a Bellatrix submission for trace.
func SubmissionBellatrix(
	trace relaytypes.BidTraceV1,
) *relaytypes.VersionedSubmitBlockRequest {
	return &relaytypes.VersionedSubmitBlockRequest{
		Version: relaytypes.VersionBellatrix,
		Bellatrix: &relaytypes.SubmitBlockRequestBellatrix{
			Message:          trace,
			ExecutionPayload: PayloadBellatrix(trace),
			Signature:        Signature(),
		},
	}
}

// SubmissionDeneb returns a Deneb submission for trace.
func SubmissionDeneb(trace relaytypes.BidTraceV1) *relaytypes.VersionedSubmitBlockRequest {
	return &relaytypes.VersionedSubmitBlockRequest{
		Version: relaytypes.VersionDeneb,
		Deneb: &relaytypes.SubmitBlockRequestDeneb{
			Message:          trace,
			ExecutionPayload: PayloadDeneb(trace),
			Signature:        Signature(),
		},
	}
}
