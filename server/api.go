package server

import (
	"context"

	"github.com/illuscio-dev/relayapi-go/relaytypes"
)

// Builder is the part of a relay builders talk to.
type Builder interface {
	// Validators scheduled to propose in the current and next epoch.
	GetValidators(ctx context.Context) relaytypes.GetValidatorsResponse

	// Submit a block for the slot in the request's bid trace.
	SubmitBlock(
		ctx context.Context,
		params *relaytypes.SubmitBlockQueryParams,
		request *relaytypes.VersionedSubmitBlockRequest,
	) relaytypes.SubmitBlockResponse
}

// Data is the public, read-only part of a relay.
type Data interface {
	GetDeliveredPayloads(
		ctx context.Context, params *relaytypes.GetDeliveredPayloadsQueryParams,
	) relaytypes.GetDeliveredPayloadsResponse

	GetReceivedBids(
		ctx context.Context, params *relaytypes.GetReceivedBidsQueryParams,
	) relaytypes.GetReceivedBidsResponse

	GetValidatorRegistration(
		ctx context.Context, params *relaytypes.GetValidatorRegistrationQueryParams,
	) relaytypes.GetValidatorRegistrationResponse
}

// API is everything the server routes to.
type API interface {
	Builder
	Data
}
