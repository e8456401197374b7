package relaytypes_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"testing"

	"github.com/illuscio-dev/relayapi-go/mimetype"
	"github.com/illuscio-dev/relayapi-go/relaytypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSuccess(test *testing.T) {
	assert := assert.New(test)

	response := relaytypes.Success([]*relaytypes.BidTraceV2{{NumTx: 3}})
	assert.False(response.IsError())

	value, errResponse := response.Unpack()
	assert.Nil(errResponse)
	assert.Len(value, 1)
	assert.Equal(relaytypes.QuotedUint64(3), value[0].NumTx)
}

func TestResponseFailure(test *testing.T) {
	assert := assert.New(test)

	response := relaytypes.Failure[*relaytypes.SignedValidatorRegistration](
		relaytypes.ErrorResponse{Code: 404, Message: "not found"},
	)
	assert.True(response.IsError())

	value, errResponse := response.Unpack()
	assert.Nil(value)
	require.NotNil(test, errResponse)
	assert.Equal(uint16(404), errResponse.Code)
	assert.Equal("404 - not found", errResponse.Error())
}

func TestErrorResponseJSON(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	buffer := new(bytes.Buffer)
	err := engine.Encode(
		mimetype.JSON,
		&relaytypes.ErrorResponse{Code: 404, Message: "not found"},
		buffer,
	)
	require.NoError(test, err)
	assert.Equal(`{"code":404,"message":"not found"}`, buffer.String())

	buffer.Reset()
	err = engine.Encode(
		mimetype.JSON,
		&relaytypes.ErrorResponse{
			Code: 500, Message: "boom", Stacktraces: []string{"main.go:10"},
		},
		buffer,
	)
	require.NoError(test, err)
	assert.Equal(
		`{"code":500,"message":"boom","stacktraces":["main.go:10"]}`, buffer.String(),
	)
}
