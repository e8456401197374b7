/*
Package relayclient calls the builder and data API of a relay.

Failed calls return a *relayerrors.Error rebuilt from the relay's response, so callers
can check the kind of failure with IsType:

	_, err := client.GetValidatorRegistration(ctx, params)
	var relayErr *relayerrors.Error
	if xerrors.As(err, &relayErr) && relayErr.IsType(relayerrors.NotFoundError) {
		...
	}
*/
package relayclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/illuscio-dev/relayapi-go/encoding"
	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/relayerrors"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/illuscio-dev/relayapi-go/server"
	"golang.org/x/xerrors"
)

// Client talks to one relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	engine     encoding.ContentEngine
	errorIndex map[int]*relayerrors.ErrorType
}

// Option configures a Client.
type Option func(client *Client)

// WithHTTPClient sets the client requests are sent with. Defaults to
// http.DefaultClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithEngine sets the content engine bodies are encoded and decoded with.
func WithEngine(engine encoding.ContentEngine) Option {
	return func(client *Client) {
		client.engine = engine
	}
}

// WithErrorIndex sets the error types relay error codes are resolved against.
// Defaults to relayerrors.ErrorTypeCodeIndex.
func WithErrorIndex(index map[int]*relayerrors.ErrorType) Option {
	return func(client *Client) {
		client.errorIndex = index
	}
}

// New creates a client for the relay at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		errorIndex: relayerrors.ErrorTypeCodeIndex,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.engine == nil {
		engine, err := relaytypes.NewContentEngine()
		if err != nil {
			return nil, xerrors.Errorf("error creating relay client: %w", err)
		}
		client.engine = engine
	}

	return client, nil
}

// SubmitBlock sends request encoded as mimeType, which must be mimetype.JSON or
// mimetype.SSZ.
func (client *Client) SubmitBlock(
	ctx context.Context,
	params *relaytypes.SubmitBlockQueryParams,
	request *relaytypes.VersionedSubmitBlockRequest,
	mimeType mimetype.MimeType,
) (*relaytypes.FullPayloadContents, error) {
	if !mimetype.IsObject(mimeType) {
		return nil, xerrors.Errorf("cannot submit block as '%v'", mimeType)
	}

	query := url.Values{}
	if params != nil {
		params.ToValues(query)
	}

	body := new(bytes.Buffer)
	if err := client.engine.Encode(mimeType, request, body); err != nil {
		return nil, xerrors.Errorf("error encoding submission: %w", err)
	}

	payload := new(relaytypes.FullPayloadContents)
	err := client.do(
		ctx, http.MethodPost, server.PathSubmitBlock, query, mimeType, body, payload,
	)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (client *Client) GetValidators(
	ctx context.Context,
) ([]*relaytypes.ValidatorsResponse, error) {
	var validators []*relaytypes.ValidatorsResponse
	err := client.get(ctx, server.PathGetValidators, nil, &validators)
	return validators, err
}

func (client *Client) GetDeliveredPayloads(
	ctx context.Context, params *relaytypes.GetDeliveredPayloadsQueryParams,
) ([]*relaytypes.BidTraceV2WithTimestamp, error) {
	query := url.Values{}
	if params != nil {
		if err := params.ToValues(query); err != nil {
			return nil, xerrors.Errorf("error encoding query: %w", err)
		}
	}

	var traces []*relaytypes.BidTraceV2WithTimestamp
	err := client.get(ctx, server.PathGetDeliveredPayloads, query, &traces)
	return traces, err
}

func (client *Client) GetReceivedBids(
	ctx context.Context, params *relaytypes.GetReceivedBidsQueryParams,
) ([]*relaytypes.BidTraceV2, error) {
	query := url.Values{}
	if params != nil {
		if err := params.ToValues(query); err != nil {
			return nil, xerrors.Errorf("error encoding query: %w", err)
		}
	}

	var bids []*relaytypes.BidTraceV2
	err := client.get(ctx, server.PathGetReceivedBids, query, &bids)
	return bids, err
}

func (client *Client) GetValidatorRegistration(
	ctx context.Context, params *relaytypes.GetValidatorRegistrationQueryParams,
) (*relaytypes.SignedValidatorRegistration, error) {
	query := url.Values{}
	if params != nil {
		if err := params.ToValues(query); err != nil {
			return nil, xerrors.Errorf("error encoding query: %w", err)
		}
	}

	registration := new(relaytypes.SignedValidatorRegistration)
	err := client.get(ctx, server.PathGetValidatorRegistration, query, registration)
	if err != nil {
		return nil, err
	}
	return registration, nil
}

func (client *Client) get(
	ctx context.Context, path string, query url.Values, receiver interface{},
) error {
	return client.do(ctx, http.MethodGet, path, query, mimetype.UNKNOWN, nil, receiver)
}

// Sends a request and decodes a JSON success body into receiver.
func (client *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	mimeType mimetype.MimeType,
	body io.Reader,
	receiver interface{},
) error {
	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return xerrors.Errorf("error creating request: %w", err)
	}
	request.Header.Set("Accept", string(mimetype.JSON))
	if body != nil {
		mimetype.SetHeader(request.Header, mimeType)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return xerrors.Errorf("error sending request: %w", err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return xerrors.Errorf("error reading response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return client.responseError(response, content)
	}

	err = client.engine.Decode(mimetype.JSON, receiver, bytes.NewReader(content))
	if err != nil {
		return xerrors.Errorf("error decoding response: %w", err)
	}
	return nil
}

// Rebuilds the relay error from a failed response. Bodies that are not a structured
// error are kept as the message.
func (client *Client) responseError(response *http.Response, content []byte) error {
	body := new(relaytypes.ErrorResponse)
	err := client.engine.Decode(mimetype.JSON, body, bytes.NewReader(content))
	if err != nil || body.Message == "" {
		message := ""
		// The text codec only fails on a broken reader, which a byte slice is not.
		_ = client.engine.Decode(mimetype.TEXT, &message, bytes.NewReader(content))
		body = &relaytypes.ErrorResponse{
			Code:    uint16(response.StatusCode),
			Message: strings.TrimSpace(message),
		}
	}

	return relayerrors.ErrorFromResponse(
		response.Header, response.StatusCode, body, client.errorIndex,
	)
}
