package relaytypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Withdrawal is a validator withdrawal processed by an execution payload.
type Withdrawal struct {
	Index          QuotedUint64   `json:"index"`
	ValidatorIndex QuotedUint64   `json:"validator_index"`
	Address        common.Address `json:"address"`
	Amount         QuotedUint64   `json:"amount"`
}

// DepositRequest is a deposit surfaced by the execution layer.
type DepositRequest struct {
	Pubkey                PublicKey    `json:"pubkey"`
	WithdrawalCredentials common.Hash  `json:"withdrawal_credentials"`
	Amount                QuotedUint64 `json:"amount"`
	Signature             Signature    `json:"signature"`
	Index                 QuotedUint64 `json:"index"`
}

// WithdrawalRequest is an execution-layer triggered exit or partial withdrawal.
type WithdrawalRequest struct {
	SourceAddress   common.Address `json:"source_address"`
	ValidatorPubkey PublicKey      `json:"validator_pubkey"`
	Amount          QuotedUint64   `json:"amount"`
}

// ConsolidationRequest moves the balance of one validator onto another.
type ConsolidationRequest struct {
	SourceAddress common.Address `json:"source_address"`
	SourcePubkey  PublicKey      `json:"source_pubkey"`
	TargetPubkey  PublicKey      `json:"target_pubkey"`
}

/*
ExecutionPayloadBellatrix is the oldest payload generation. Each later generation
embeds the one before it and appends its own fields, which matches how their SSZ
layouts extend each other: fixed fields and offsets are a prefix of the next
generation's, and so are the variable-size sections.
*/
type ExecutionPayloadBellatrix struct {
	ParentHash    common.Hash     `json:"parent_hash"`
	FeeRecipient  common.Address  `json:"fee_recipient"`
	StateRoot     common.Hash     `json:"state_root"`
	ReceiptsRoot  common.Hash     `json:"receipts_root"`
	LogsBloom     Bloom           `json:"logs_bloom"`
	PrevRandao    common.Hash     `json:"prev_randao"`
	BlockNumber   QuotedUint64    `json:"block_number"`
	GasLimit      QuotedUint64    `json:"gas_limit"`
	GasUsed       QuotedUint64    `json:"gas_used"`
	Timestamp     QuotedUint64    `json:"timestamp"`
	ExtraData     hexutil.Bytes   `json:"extra_data"`
	BaseFeePerGas Uint256         `json:"base_fee_per_gas"`
	BlockHash     common.Hash     `json:"block_hash"`
	Transactions  []hexutil.Bytes `json:"transactions"`
}

// ExecutionPayloadCapella adds withdrawals.
type ExecutionPayloadCapella struct {
	ExecutionPayloadBellatrix
	Withdrawals []Withdrawal `json:"withdrawals"`
}

// ExecutionPayloadDeneb adds blob gas accounting.
type ExecutionPayloadDeneb struct {
	ExecutionPayloadCapella
	BlobGasUsed   QuotedUint64 `json:"blob_gas_used"`
	ExcessBlobGas QuotedUint64 `json:"excess_blob_gas"`
}

// ExecutionPayloadElectra adds execution-layer requests.
type ExecutionPayloadElectra struct {
	ExecutionPayloadDeneb
	DepositRequests       []DepositRequest       `json:"deposit_requests"`
	WithdrawalRequests    []WithdrawalRequest    `json:"withdrawal_requests"`
	ConsolidationRequests []ConsolidationRequest `json:"consolidation_requests"`
}
