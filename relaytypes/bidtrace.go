package relaytypes

import (
	"github.com/ethereum/go-ethereum/common"
)

const bidTraceV1Size = 236

// BidTraceV1 describes one candidate block offered by a builder.
type BidTraceV1 struct {
	Slot                 Slot           `json:"slot"`
	ParentHash           common.Hash    `json:"parent_hash"`
	BlockHash            common.Hash    `json:"block_hash"`
	BuilderPubkey        PublicKey      `json:"builder_pubkey"`
	ProposerPubkey       PublicKey      `json:"proposer_pubkey"`
	ProposerFeeRecipient common.Address `json:"proposer_fee_recipient"`
	GasLimit             QuotedUint64   `json:"gas_limit"`
	GasUsed              QuotedUint64   `json:"gas_used"`
	Value                Uint256        `json:"value"`
}

// BidTraceV2 is returned by the data API and adds block counters.
type BidTraceV2 struct {
	BidTraceV1
	BlockNumber QuotedUint64 `json:"block_number"`
	NumTx       QuotedUint64 `json:"num_tx"`
}

// BidTraceV2WithTimestamp records when the relay received a bid.
type BidTraceV2WithTimestamp struct {
	BidTraceV2
	Timestamp   QuotedInt64 `json:"timestamp"`
	TimestampMs QuotedInt64 `json:"timestamp_ms"`
}

func (trace *BidTraceV1) SizeSSZ() int {
	return bidTraceV1Size
}

func (trace *BidTraceV1) MarshalSSZ() ([]byte, error) {
	return trace.MarshalSSZTo(make([]byte, 0, bidTraceV1Size))
}

func (trace *BidTraceV1) MarshalSSZTo(dst []byte) ([]byte, error) {
	writer := newSSZWriter(bidTraceV1Size)
	writer.putUint64(uint64(trace.Slot))
	writer.putBytes(trace.ParentHash[:])
	writer.putBytes(trace.BlockHash[:])
	writer.putBytes(trace.BuilderPubkey[:])
	writer.putBytes(trace.ProposerPubkey[:])
	writer.putBytes(trace.ProposerFeeRecipient[:])
	writer.putUint64(uint64(trace.GasLimit))
	writer.putUint64(uint64(trace.GasUsed))
	writer.putUint256(&trace.Value)
	return writer.finish(dst)
}

func (trace *BidTraceV1) UnmarshalSSZ(buf []byte) error {
	reader, err := newSSZReader(buf, bidTraceV1Size, false)
	if err != nil {
		return err
	}
	trace.Slot = Slot(reader.getUint64())
	reader.getBytes(trace.ParentHash[:])
	reader.getBytes(trace.BlockHash[:])
	reader.getBytes(trace.BuilderPubkey[:])
	reader.getBytes(trace.ProposerPubkey[:])
	reader.getBytes(trace.ProposerFeeRecipient[:])
	trace.GasLimit = QuotedUint64(reader.getUint64())
	trace.GasUsed = QuotedUint64(reader.getUint64())
	reader.getUint256(&trace.Value)
	return reader.split()
}
