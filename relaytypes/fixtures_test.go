package relaytypes_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/stretchr/testify/require"
)

// Fills dst with a byte pattern so fields of the same length differ between tests.
func fill(dst []byte, seed byte) {
	for index := range dst {
		dst[index] = seed + byte(index)
	}
}

func createEngine(test *testing.T) *encoding.Engine {
	engine, err := relaytypes.NewContentEngine()
	require.NoError(test, err)
	return engine
}

func createBidTrace() relaytypes.BidTraceV1 {
	trace := relaytypes.BidTraceV1{
		Slot:     9485504,
		GasLimit: 30000000,
		GasUsed:  12345678,
		Value:    relaytypes.NewUint256(1000000000000000000),
	}
	fill(trace.ParentHash[:], 1)
	fill(trace.BlockHash[:], 2)
	fill(trace.BuilderPubkey[:], 3)
	fill(trace.ProposerPubkey[:], 4)
	fill(trace.ProposerFeeRecipient[:], 5)
	return trace
}

func createPayloadBellatrix() relaytypes.ExecutionPayloadBellatrix {
	payload := relaytypes.ExecutionPayloadBellatrix{
		BlockNumber:   19000000,
		GasLimit:      30000000,
		GasUsed:       12345678,
		Timestamp:     1709833797,
		ExtraData:     hexutil.Bytes("relayapi"),
		BaseFeePerGas: relaytypes.NewUint256(7),
		Transactions: []hexutil.Bytes{
			{0x02, 0xf8, 0x70, 0x01},
			{0x02, 0xf8, 0x71, 0x02, 0x03},
		},
	}
	fill(payload.ParentHash[:], 10)
	fill(payload.FeeRecipient[:], 11)
	fill(payload.StateRoot[:], 12)
	fill(payload.ReceiptsRoot[:], 13)
	fill(payload.LogsBloom[:], 14)
	fill(payload.PrevRandao[:], 15)
	fill(payload.BlockHash[:], 16)
	return payload
}

func createPayloadCapella() relaytypes.ExecutionPayloadCapella {
	withdrawal := relaytypes.Withdrawal{
		Index:          1,
		ValidatorIndex: 352280,
		Amount:         17000000,
	}
	fill(withdrawal.Address[:], 20)

	return relaytypes.ExecutionPayloadCapella{
		ExecutionPayloadBellatrix: createPayloadBellatrix(),
		Withdrawals:               []relaytypes.Withdrawal{withdrawal},
	}
}

func createPayloadDeneb() relaytypes.ExecutionPayloadDeneb {
	return relaytypes.ExecutionPayloadDeneb{
		ExecutionPayloadCapella: createPayloadCapella(),
		BlobGasUsed:             131072,
		ExcessBlobGas:           262144,
	}
}

func createPayloadElectra() relaytypes.ExecutionPayloadElectra {
	deposit := relaytypes.DepositRequest{Amount: 32000000000, Index: 4}
	fill(deposit.Pubkey[:], 30)
	fill(deposit.WithdrawalCredentials[:], 31)
	fill(deposit.Signature[:], 32)

	withdrawal := relaytypes.WithdrawalRequest{Amount: 1000}
	fill(withdrawal.SourceAddress[:], 33)
	fill(withdrawal.ValidatorPubkey[:], 34)

	consolidation := relaytypes.ConsolidationRequest{}
	fill(consolidation.SourceAddress[:], 35)
	fill(consolidation.SourcePubkey[:], 36)
	fill(consolidation.TargetPubkey[:], 37)

	return relaytypes.ExecutionPayloadElectra{
		ExecutionPayloadDeneb: createPayloadDeneb(),
		DepositRequests:       []relaytypes.DepositRequest{deposit},
		WithdrawalRequests:    []relaytypes.WithdrawalRequest{withdrawal},
		ConsolidationRequests: []relaytypes.ConsolidationRequest{consolidation},
	}
}

func createSignature() relaytypes.Signature {
	signature := relaytypes.Signature{}
	fill(signature[:], 40)
	return signature
}

// Returns one submission per payload generation, oldest first.
func createSubmissions() []*relaytypes.VersionedSubmitBlockRequest {
	return []*relaytypes.VersionedSubmitBlockRequest{
		{
			Version: relaytypes.VersionBellatrix,
			Bellatrix: &relaytypes.SubmitBlockRequestBellatrix{
				Message:          createBidTrace(),
				ExecutionPayload: createPayloadBellatrix(),
				Signature:        createSignature(),
			},
		},
		{
			Version: relaytypes.VersionCapella,
			Capella: &relaytypes.SubmitBlockRequestCapella{
				Message:          createBidTrace(),
				ExecutionPayload: createPayloadCapella(),
				Signature:        createSignature(),
			},
		},
		{
			Version: relaytypes.VersionDeneb,
			Deneb: &relaytypes.SubmitBlockRequestDeneb{
				Message:          createBidTrace(),
				ExecutionPayload: createPayloadDeneb(),
				Signature:        createSignature(),
			},
		},
		{
			Version: relaytypes.VersionElectra,
			Electra: &relaytypes.SubmitBlockRequestElectra{
				Message:          createBidTrace(),
				ExecutionPayload: createPayloadElectra(),
				Signature:        createSignature(),
			},
		},
	}
}

var testPubkey = func() relaytypes.PublicKey {
	key := relaytypes.PublicKey{}
	fill(key[:], 50)
	return key
}()

var testHash = common.HexToHash(
	"0x8a5fc680ee010c424a3007e414d6c8d610f48025501278dae8764dd2ed062c93",
)
