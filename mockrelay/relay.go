/*
Package mockrelay is an in-memory relay for developing and testing builders.

It schedules the proposers it is configured with, keeps the best bid per builder and
slot, and answers the data API from what it has seen. Bids are never checked against
an execution client and signatures are not verified.
*/
package mockrelay

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// DefaultMaxLimit is the largest page the data API returns when the config sets none.
const DefaultMaxLimit = 200

type bidKey struct {
	slot    relaytypes.Slot
	builder relaytypes.PublicKey
}

type receivedBid struct {
	trace   *relaytypes.BidTraceV2WithTimestamp
	payload *relaytypes.FullPayloadContents
}

// Relay implements the builder and data API in memory. It is safe for concurrent use.
type Relay struct {
	validators    []*relaytypes.ValidatorsResponse
	registrations map[relaytypes.PublicKey]*relaytypes.SignedValidatorRegistration
	maxLimit      uint64
	logger        logrus.FieldLogger

	// Returns the current time. Replaced in tests.
	Now func() time.Time

	lock      sync.RWMutex
	bids      map[bidKey]*receivedBid
	delivered []*relaytypes.BidTraceV2WithTimestamp
}

// New creates a relay seeded from config. A nil logger logs to the logrus standard
// logger.
func New(config Config, logger logrus.FieldLogger) (*Relay, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	relay := &Relay{
		registrations: make(map[relaytypes.PublicKey]*relaytypes.SignedValidatorRegistration),
		maxLimit:      config.MaxLimit,
		logger:        logger,
		Now:           time.Now,
		bids:          make(map[bidKey]*receivedBid),
	}
	if relay.maxLimit == 0 {
		relay.maxLimit = DefaultMaxLimit
	}

	for index, validator := range config.Validators {
		entry, err := validator.toResponse()
		if err != nil {
			return nil, xerrors.Errorf("validator %v: %w", index, err)
		}
		relay.validators = append(relay.validators, entry)
		relay.registrations[entry.Entry.Message.Pubkey] = &entry.Entry
	}

	return relay, nil
}

func failure[T any](status int, message string) relaytypes.Response[T] {
	return relaytypes.Failure[T](relaytypes.ErrorResponse{
		Code:    uint16(status),
		Message: message,
	})
}

// Returns the proposer scheduled for slot.
func (relay *Relay) proposer(slot relaytypes.Slot) *relaytypes.ValidatorsResponse {
	for _, entry := range relay.validators {
		if entry.Slot == slot {
			return entry
		}
	}
	return nil
}

func (relay *Relay) GetValidators(ctx context.Context) relaytypes.GetValidatorsResponse {
	validators := make([]*relaytypes.ValidatorsResponse, len(relay.validators))
	copy(validators, relay.validators)
	return relaytypes.Success(validators)
}

/*
SubmitBlock records a bid. A builder holds one bid per slot: a new bid replaces the
earlier one when it is worth more, or whenever cancellations are requested. Bids for
slots with no scheduled proposer, for another proposer, or whose payload does not
match the message are rejected with 400.
*/
func (relay *Relay) SubmitBlock(
	ctx context.Context,
	params *relaytypes.SubmitBlockQueryParams,
	request *relaytypes.VersionedSubmitBlockRequest,
) relaytypes.SubmitBlockResponse {
	trace, err := request.BidTrace()
	if err != nil {
		return failure[*relaytypes.FullPayloadContents](http.StatusBadRequest, err.Error())
	}
	payload, err := request.ExecutionPayload()
	if err != nil {
		return failure[*relaytypes.FullPayloadContents](http.StatusBadRequest, err.Error())
	}
	header, _ := payload.Header()

	if message := checkBid(relay.proposer(trace.Slot), trace, header); message != "" {
		return failure[*relaytypes.FullPayloadContents](http.StatusBadRequest, message)
	}

	cancellations := params != nil && params.Cancellations != nil && *params.Cancellations
	now := relay.Now()
	key := bidKey{slot: trace.Slot, builder: trace.BuilderPubkey}

	relay.lock.Lock()
	defer relay.lock.Unlock()

	if earlier, ok := relay.bids[key]; ok && !cancellations {
		if trace.Value.Cmp(earlier.trace.Value) <= 0 {
			return failure[*relaytypes.FullPayloadContents](
				http.StatusBadRequest,
				"bid does not beat the builder's earlier bid for this slot",
			)
		}
	}

	relay.bids[key] = &receivedBid{
		trace: &relaytypes.BidTraceV2WithTimestamp{
			BidTraceV2: relaytypes.BidTraceV2{
				BidTraceV1:  *trace,
				BlockNumber: header.BlockNumber,
				NumTx:       relaytypes.QuotedUint64(len(header.Transactions)),
			},
			Timestamp:   relaytypes.QuotedInt64(now.Unix()),
			TimestampMs: relaytypes.QuotedInt64(now.UnixNano() / int64(time.Millisecond)),
		},
		payload: payload,
	}

	relay.logger.WithFields(logrus.Fields{
		"slot":       uint64(trace.Slot),
		"builder":    trace.BuilderPubkey.String(),
		"block_hash": trace.BlockHash.Hex(),
		"value":      trace.Value.Big().String(),
		"version":    request.Version.String(),
	}).Info("bid received")

	return relaytypes.Success(payload)
}

// Returns why a bid is rejected, or an empty string.
func checkBid(
	proposer *relaytypes.ValidatorsResponse,
	trace *relaytypes.BidTraceV1,
	header *relaytypes.ExecutionPayloadBellatrix,
) string {
	switch {
	case proposer == nil:
		return fmt.Sprintf("no proposer scheduled for slot %v", uint64(trace.Slot))
	case proposer.Entry.Message.Pubkey != trace.ProposerPubkey:
		return "proposer_pubkey does not match the scheduled proposer"
	case proposer.Entry.Message.FeeRecipient != trace.ProposerFeeRecipient:
		return "proposer_fee_recipient does not match the proposer's registration"
	case header.BlockHash != trace.BlockHash:
		return "block_hash does not match the execution payload"
	case header.ParentHash != trace.ParentHash:
		return "parent_hash does not match the execution payload"
	case header.GasLimit != trace.GasLimit || header.GasUsed != trace.GasUsed:
		return "gas does not match the execution payload"
	}
	return ""
}

/*
DeliverPayload marks the most valuable bid for slot as delivered to its proposer and
returns its payload. It stands in for the proposer API, which this relay does not
serve.
*/
func (relay *Relay) DeliverPayload(
	slot relaytypes.Slot,
) (*relaytypes.FullPayloadContents, error) {
	relay.lock.Lock()
	defer relay.lock.Unlock()

	for _, trace := range relay.delivered {
		if trace.Slot == slot {
			return nil, xerrors.Errorf("payload for slot %v already delivered", uint64(slot))
		}
	}

	var best *receivedBid
	for key, bid := range relay.bids {
		if key.slot != slot {
			continue
		}
		if best == nil || bid.trace.Value.Cmp(best.trace.Value) > 0 {
			best = bid
		}
	}
	if best == nil {
		return nil, xerrors.Errorf("no bids for slot %v", uint64(slot))
	}

	relay.delivered = append(relay.delivered, best.trace)
	relay.logger.WithFields(logrus.Fields{
		"slot":       uint64(slot),
		"block_hash": best.trace.BlockHash.Hex(),
	}).Info("payload delivered")

	return best.payload, nil
}

// Applies the ordering of the data API: by value when asked, newest slot first
// otherwise.
func sortTraces(traces []*relaytypes.BidTraceV2WithTimestamp, orderBy *relaytypes.OrderBy) {
	sort.SliceStable(traces, func(i, j int) bool {
		if orderBy != nil {
			cmp := traces[i].Value.Cmp(traces[j].Value)
			if *orderBy == relaytypes.OrderByValue {
				return cmp < 0
			}
			return cmp > 0
		}
		if traces[i].Slot != traces[j].Slot {
			return traces[i].Slot > traces[j].Slot
		}
		return traces[i].TimestampMs > traces[j].TimestampMs
	})
}

// Returns the page size for limit, or an error message when it is too large.
func (relay *Relay) pageSize(limit *relaytypes.QuotedUint64) (int, string) {
	if limit == nil {
		return int(relay.maxLimit), ""
	}
	if uint64(*limit) > relay.maxLimit {
		return 0, fmt.Sprintf("maximum limit is %v", relay.maxLimit)
	}
	return int(*limit), ""
}

func (relay *Relay) GetDeliveredPayloads(
	ctx context.Context, params *relaytypes.GetDeliveredPayloadsQueryParams,
) relaytypes.GetDeliveredPayloadsResponse {
	size, message := relay.pageSize(params.Limit)
	if message != "" {
		return failure[[]*relaytypes.BidTraceV2WithTimestamp](http.StatusBadRequest, message)
	}
	if params.Slot != nil && params.Cursor != nil {
		return failure[[]*relaytypes.BidTraceV2WithTimestamp](
			http.StatusBadRequest, "cannot specify both slot and cursor",
		)
	}

	relay.lock.RLock()
	traces := make([]*relaytypes.BidTraceV2WithTimestamp, 0, len(relay.delivered))
	for _, trace := range relay.delivered {
		switch {
		case params.Slot != nil && trace.Slot != *params.Slot:
		case params.Cursor != nil && trace.Slot > *params.Cursor:
		case params.BlockHash != nil && trace.BlockHash != *params.BlockHash:
		case params.BlockNumber != nil && trace.BlockNumber != *params.BlockNumber:
		case params.ProposerPubkey != nil && trace.ProposerPubkey != *params.ProposerPubkey:
		case params.BuilderPubkey != nil && trace.BuilderPubkey != *params.BuilderPubkey:
		default:
			traces = append(traces, trace)
		}
	}
	relay.lock.RUnlock()

	sortTraces(traces, params.OrderBy)
	if len(traces) > size {
		traces = traces[:size]
	}
	return relaytypes.Success(traces)
}

func (relay *Relay) GetReceivedBids(
	ctx context.Context, params *relaytypes.GetReceivedBidsQueryParams,
) relaytypes.GetReceivedBidsResponse {
	size, message := relay.pageSize(params.Limit)
	if message != "" {
		return failure[[]*relaytypes.BidTraceV2](http.StatusBadRequest, message)
	}
	if params.Slot == nil &&
		params.BlockHash == nil &&
		params.BlockNumber == nil &&
		params.BuilderPubkey == nil {
		return failure[[]*relaytypes.BidTraceV2](
			http.StatusBadRequest,
			"need to query for specific slot or block_hash or block_number or builder_pubkey",
		)
	}

	relay.lock.RLock()
	matched := make([]*relaytypes.BidTraceV2WithTimestamp, 0)
	for _, bid := range relay.bids {
		trace := bid.trace
		switch {
		case params.Slot != nil && trace.Slot != *params.Slot:
		case params.BlockHash != nil && trace.BlockHash != *params.BlockHash:
		case params.BlockNumber != nil && trace.BlockNumber != *params.BlockNumber:
		case params.BuilderPubkey != nil && trace.BuilderPubkey != *params.BuilderPubkey:
		default:
			matched = append(matched, trace)
		}
	}
	relay.lock.RUnlock()

	sortTraces(matched, nil)
	if len(matched) > size {
		matched = matched[:size]
	}

	bids := make([]*relaytypes.BidTraceV2, len(matched))
	for index, trace := range matched {
		bid := trace.BidTraceV2
		bids[index] = &bid
	}
	return relaytypes.Success(bids)
}

func (relay *Relay) GetValidatorRegistration(
	ctx context.Context, params *relaytypes.GetValidatorRegistrationQueryParams,
) relaytypes.GetValidatorRegistrationResponse {
	registration, ok := relay.registrations[params.Pubkey]
	if !ok {
		return failure[*relaytypes.SignedValidatorRegistration](
			http.StatusNotFound, "no such validator",
		)
	}
	return relaytypes.Success(registration)
}
