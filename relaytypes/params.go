package relaytypes

import (
	stdencoding "encoding"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

type valueSetter interface {
	Set(key string, value string)
}

type valueFetcher interface {
	Get(key string) string
}

// OrderBy sorts delivered payloads by bid value.
type OrderBy string

const (
	OrderByValue         OrderBy = "value"
	OrderByNegativeValue OrderBy = "-value"
)

func (orderBy OrderBy) MarshalText() ([]byte, error) {
	return []byte(orderBy), nil
}

func (orderBy *OrderBy) UnmarshalText(input []byte) error {
	switch parsed := OrderBy(input); parsed {
	case OrderByValue, OrderByNegativeValue:
		*orderBy = parsed
		return nil
	default:
		return xerrors.Errorf("unknown ordering '%s'", input)
	}
}

// Query parameters for POST /relay/v1/builder/blocks.
type SubmitBlockQueryParams struct {
	// Whether the builder may replace its earlier bid for the slot with a lower one.
	Cancellations *bool
}

// Dumps the query parameters to request URL params.
func (params *SubmitBlockQueryParams) ToValues(values valueSetter) {
	if params.Cancellations != nil {
		values.Set("cancellations", strconv.FormatBool(*params.Cancellations))
	}
}

// Generates SubmitBlockQueryParams from request parameters.
func SubmitBlockQueryParamsFromValues(
	values valueFetcher,
) (params *SubmitBlockQueryParams, err error) {
	params = &SubmitBlockQueryParams{}

	params.Cancellations, err = getBool(values, "cancellations")
	if err != nil {
		return nil, err
	}

	return params, nil
}

// Query parameters for GET /relay/v1/data/bidtraces/proposer_payload_delivered.
type GetDeliveredPayloadsQueryParams struct {
	Slot           *Slot
	Cursor         *Slot
	Limit          *QuotedUint64
	BlockHash      *common.Hash
	BlockNumber    *QuotedUint64
	ProposerPubkey *PublicKey
	BuilderPubkey  *PublicKey
	OrderBy        *OrderBy
}

// Dumps the query parameters to request URL params.
func (params *GetDeliveredPayloadsQueryParams) ToValues(values valueSetter) error {
	fields := []struct {
		key   string
		value stdencoding.TextMarshaler
		set   bool
	}{
		{"slot", params.Slot, params.Slot != nil},
		{"cursor", params.Cursor, params.Cursor != nil},
		{"limit", params.Limit, params.Limit != nil},
		{"block_hash", params.BlockHash, params.BlockHash != nil},
		{"block_number", params.BlockNumber, params.BlockNumber != nil},
		{"proposer_pubkey", params.ProposerPubkey, params.ProposerPubkey != nil},
		{"builder_pubkey", params.BuilderPubkey, params.BuilderPubkey != nil},
		{"order_by", params.OrderBy, params.OrderBy != nil},
	}

	for _, field := range fields {
		if !field.set {
			continue
		}
		if err := setText(values, field.key, field.value); err != nil {
			return err
		}
	}
	return nil
}

// Generates GetDeliveredPayloadsQueryParams from request parameters.
func GetDeliveredPayloadsQueryParamsFromValues(
	values valueFetcher,
) (params *GetDeliveredPayloadsQueryParams, err error) {
	params = &GetDeliveredPayloadsQueryParams{}

	if params.Slot, err = getText[Slot](values, "slot"); err != nil {
		return nil, err
	}
	if params.Cursor, err = getText[Slot](values, "cursor"); err != nil {
		return nil, err
	}
	if params.Limit, err = getText[QuotedUint64](values, "limit"); err != nil {
		return nil, err
	}
	if params.BlockHash, err = getText[common.Hash](values, "block_hash"); err != nil {
		return nil, err
	}
	params.BlockNumber, err = getText[QuotedUint64](values, "block_number")
	if err != nil {
		return nil, err
	}
	params.ProposerPubkey, err = getText[PublicKey](values, "proposer_pubkey")
	if err != nil {
		return nil, err
	}
	params.BuilderPubkey, err = getText[PublicKey](values, "builder_pubkey")
	if err != nil {
		return nil, err
	}
	if params.OrderBy, err = getText[OrderBy](values, "order_by"); err != nil {
		return nil, err
	}

	return params, nil
}

// Query parameters for GET /relay/v1/data/bidtraces/builder_blocks_received.
type GetReceivedBidsQueryParams struct {
	Slot          *Slot
	BlockHash     *common.Hash
	BlockNumber   *QuotedUint64
	BuilderPubkey *PublicKey
	Limit         *QuotedUint64
}

// Dumps the query parameters to request URL params.
func (params *GetReceivedBidsQueryParams) ToValues(values valueSetter) error {
	fields := []struct {
		key   string
		value stdencoding.TextMarshaler
		set   bool
	}{
		{"slot", params.Slot, params.Slot != nil},
		{"block_hash", params.BlockHash, params.BlockHash != nil},
		{"block_number", params.BlockNumber, params.BlockNumber != nil},
		{"builder_pubkey", params.BuilderPubkey, params.BuilderPubkey != nil},
		{"limit", params.Limit, params.Limit != nil},
	}

	for _, field := range fields {
		if !field.set {
			continue
		}
		if err := setText(values, field.key, field.value); err != nil {
			return err
		}
	}
	return nil
}

// Generates GetReceivedBidsQueryParams from request parameters.
func GetReceivedBidsQueryParamsFromValues(
	values valueFetcher,
) (params *GetReceivedBidsQueryParams, err error) {
	params = &GetReceivedBidsQueryParams{}

	if params.Slot, err = getText[Slot](values, "slot"); err != nil {
		return nil, err
	}
	if params.BlockHash, err = getText[common.Hash](values, "block_hash"); err != nil {
		return nil, err
	}
	params.BlockNumber, err = getText[QuotedUint64](values, "block_number")
	if err != nil {
		return nil, err
	}
	params.BuilderPubkey, err = getText[PublicKey](values, "builder_pubkey")
	if err != nil {
		return nil, err
	}
	if params.Limit, err = getText[QuotedUint64](values, "limit"); err != nil {
		return nil, err
	}

	return params, nil
}

// Query parameters for GET /relay/v1/data/validator_registration.
type GetValidatorRegistrationQueryParams struct {
	Pubkey PublicKey
}

// Dumps the query parameters to request URL params.
func (params *GetValidatorRegistrationQueryParams) ToValues(values valueSetter) error {
	return setText(values, "pubkey", params.Pubkey)
}

// Generates GetValidatorRegistrationQueryParams from request parameters. The pubkey
// is required.
func GetValidatorRegistrationQueryParamsFromValues(
	values valueFetcher,
) (*GetValidatorRegistrationQueryParams, error) {
	pubkey, err := getText[PublicKey](values, "pubkey")
	if err != nil {
		return nil, err
	}
	if pubkey == nil {
		return nil, xerrors.New("pubkey is required")
	}
	return &GetValidatorRegistrationQueryParams{Pubkey: *pubkey}, nil
}

func setText(values valueSetter, key string, value stdencoding.TextMarshaler) error {
	text, err := value.MarshalText()
	if err != nil {
		return xerrors.Errorf("%v: %w", key, err)
	}
	values.Set(key, string(text))
	return nil
}

func getBool(values valueFetcher, key string) (*bool, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, xerrors.New(key + " is not bool")
	}
	return &parsed, nil
}

// Returns nil when key is absent.
func getText[T any, PT interface {
	*T
	stdencoding.TextUnmarshaler
}](values valueFetcher, key string) (*T, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}

	parsed := new(T)
	if err := PT(parsed).UnmarshalText([]byte(value)); err != nil {
		return nil, xerrors.Errorf("%v: %w", key, err)
	}
	return parsed, nil
}
