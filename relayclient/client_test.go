package relayclient_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/illuscio-dev/relayapi-go/internal/relaytest"
	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/mockrelay"
	"github.com/illuscio-dev/relayapi-go/relayclient"
	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/illuscio-dev/relayapi-go/server"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// Serves a mock relay scheduling slots and returns a client for it.
func createClient(
	test *testing.T, slots ...uint64,
) (*relayclient.Client, *mockrelay.Relay, *httptest.Server) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	relay, err := mockrelay.New(relaytest.RelayConfig(slots...), logger)
	require.NoError(test, err)

	relayServer, err := server.New(relay, server.WithLogger(logger))
	require.NoError(test, err)
	test.Cleanup(relayServer.Close)

	httpServer := httptest.NewServer(relayServer)
	test.Cleanup(httpServer.Close)

	client, err := relayclient.New(httpServer.URL+"/", relayclient.WithHTTPClient(
		httpServer.Client(),
	))
	require.NoError(test, err)

	return client, relay, httpServer
}

func requireRelayError(test *testing.T, err error) *relayerrors.Error {
	var relayErr *relayerrors.Error
	require.True(test, xerrors.As(err, &relayErr), "error is not a relay error: %v", err)
	return relayErr
}

func TestSubmitBlock(test *testing.T) {
	for _, mimeType := range []mimetype.MimeType{mimetype.JSON, mimetype.SSZ} {
		test.Run(string(mimeType), func(test *testing.T) {
			assert := assert.New(test)

			client, _, _ := createClient(test, 10)
			trace := relaytest.BidTrace(10, 500, 3)
			submission := relaytest.SubmissionDeneb(trace)

			payload, err := client.SubmitBlock(
				context.Background(), nil, submission, mimeType,
			)
			require.NoError(test, err)
			assert.Equal(relaytypes.VersionDeneb, payload.Version)
			assert.Equal(&submission.Deneb.ExecutionPayload, payload.Deneb)

			slot := relaytypes.Slot(10)
			bids, err := client.GetReceivedBids(
				context.Background(), &relaytypes.GetReceivedBidsQueryParams{Slot: &slot},
			)
			require.NoError(test, err)
			require.Len(test, bids, 1)
			assert.Equal(trace, bids[0].BidTraceV1)
		})
	}
}

func TestSubmitBlockBellatrixSSZ(test *testing.T) {
	client, _, _ := createClient(test, 10)
	submission := relaytest.SubmissionBellatrix(relaytest.BidTrace(10, 500, 3))

	payload, err := client.SubmitBlock(context.Background(), nil, submission, mimetype.SSZ)
	require.NoError(test, err)
	assert.Equal(test, relaytypes.VersionBellatrix, payload.Version)
}

func TestSubmitBlockCancellations(test *testing.T) {
	assert := assert.New(test)

	client, _, _ := createClient(test, 10)
	first := relaytest.SubmissionDeneb(relaytest.BidTrace(10, 500, 3))
	lower := relaytest.SubmissionDeneb(relaytest.BidTrace(10, 400, 3))

	_, err := client.SubmitBlock(context.Background(), nil, first, mimetype.JSON)
	require.NoError(test, err)

	_, err = client.SubmitBlock(context.Background(), nil, lower, mimetype.JSON)
	relayErr := requireRelayError(test, err)
	assert.True(relayErr.IsType(relayerrors.RequestValidationError))
	assert.Equal(http.StatusBadRequest, relayErr.Status())

	cancel := true
	_, err = client.SubmitBlock(
		context.Background(),
		&relaytypes.SubmitBlockQueryParams{Cancellations: &cancel},
		lower,
		mimetype.JSON,
	)
	assert.NoError(err)
}

func TestSubmitBlockRejectsTextBody(test *testing.T) {
	client, _, _ := createClient(test, 10)
	submission := relaytest.SubmissionDeneb(relaytest.BidTrace(10, 500, 3))

	_, err := client.SubmitBlock(context.Background(), nil, submission, mimetype.TEXT)
	assert.EqualError(test, err, "cannot submit block as 'text/plain'")
}

func TestGetValidators(test *testing.T) {
	assert := assert.New(test)

	client, _, _ := createClient(test, 10, 11)
	validators, err := client.GetValidators(context.Background())
	require.NoError(test, err)
	require.Len(test, validators, 2)
	assert.Equal(relaytypes.Slot(11), validators[1].Slot)
	assert.Equal(relaytest.ProposerPubkey, validators[1].Entry.Message.Pubkey)
}

func TestGetDeliveredPayloads(test *testing.T) {
	assert := assert.New(test)

	client, relay, _ := createClient(test, 10)
	trace := relaytest.BidTrace(10, 500, 3)
	_, err := client.SubmitBlock(
		context.Background(), nil, relaytest.SubmissionDeneb(trace), mimetype.SSZ,
	)
	require.NoError(test, err)
	_, err = relay.DeliverPayload(10)
	require.NoError(test, err)

	orderBy := relaytypes.OrderByNegativeValue
	traces, err := client.GetDeliveredPayloads(
		context.Background(),
		&relaytypes.GetDeliveredPayloadsQueryParams{
			BuilderPubkey: &trace.BuilderPubkey,
			OrderBy:       &orderBy,
		},
	)
	require.NoError(test, err)
	require.Len(test, traces, 1)
	assert.Equal(trace.BlockHash, traces[0].BlockHash)
	assert.NotZero(traces[0].TimestampMs)
}

func TestGetDeliveredPayloadsInvalidLimit(test *testing.T) {
	assert := assert.New(test)

	client, _, _ := createClient(test, 10)
	limit := relaytypes.QuotedUint64(1000)

	_, err := client.GetDeliveredPayloads(
		context.Background(),
		&relaytypes.GetDeliveredPayloadsQueryParams{Limit: &limit},
	)
	relayErr := requireRelayError(test, err)
	assert.True(relayErr.IsType(relayerrors.RequestValidationError))
	assert.Equal("maximum limit is 200", relayErr.Message)
}

func TestGetValidatorRegistration(test *testing.T) {
	assert := assert.New(test)

	client, _, _ := createClient(test, 10)

	registration, err := client.GetValidatorRegistration(
		context.Background(),
		&relaytypes.GetValidatorRegistrationQueryParams{Pubkey: relaytest.ProposerPubkey},
	)
	require.NoError(test, err)
	assert.Equal(relaytest.FeeRecipient(), registration.Message.FeeRecipient)

	_, err = client.GetValidatorRegistration(
		context.Background(),
		&relaytypes.GetValidatorRegistrationQueryParams{Pubkey: relaytest.Pubkey(90)},
	)
	relayErr := requireRelayError(test, err)
	assert.True(relayErr.IsType(relayerrors.NotFoundError))
	assert.Equal("no such validator", relayErr.Message)
}

func TestErrorFromHeaders(test *testing.T) {
	assert := assert.New(test)

	_, _, httpServer := createClient(test)
	client, err := relayclient.New(httpServer.URL + "/elsewhere")
	require.NoError(test, err)

	_, err = client.GetValidators(context.Background())
	relayErr := requireRelayError(test, err)
	assert.True(relayErr.IsType(relayerrors.NotFoundError))
	assert.Equal("not found", relayErr.Message)
}

func TestErrorFromTextBody(test *testing.T) {
	assert := assert.New(test)

	httpServer := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			http.Error(writer, "upstream unavailable", http.StatusBadGateway)
		},
	))
	defer httpServer.Close()

	client, err := relayclient.New(httpServer.URL)
	require.NoError(test, err)

	_, err = client.GetValidators(context.Background())
	relayErr := requireRelayError(test, err)
	assert.True(relayErr.IsType(relayerrors.APIError))
	assert.Equal("upstream unavailable", relayErr.Message)
	assert.Equal(http.StatusBadGateway, relayErr.Status())
}

func TestErrorUnknownStatus(test *testing.T) {
	assert := assert.New(test)

	httpServer := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusTeapot)
		},
	))
	defer httpServer.Close()

	client, err := relayclient.New(httpServer.URL)
	require.NoError(test, err)

	_, err = client.GetValidators(context.Background())
	relayErr := requireRelayError(test, err)
	assert.Equal(relayerrors.APIError.Name(), relayErr.Name())
	assert.Equal(http.StatusTeapot, relayErr.Status())
}

func TestRequestCancelled(test *testing.T) {
	client, _, _ := createClient(test, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetValidators(ctx)
	assert.True(test, xerrors.Is(err, context.Canceled))
}
