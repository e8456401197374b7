package mockrelay_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/illuscio-dev/relayapi-go/mockrelay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
max_limit: 50
validators:
  - slot: 3
    validator_index: 12
    pubkey: "0x93247f2209abcacf57b75a51dafae777f9dd38bc7053d1af526f220a7489a6d3a2753e5f3e8b1cfe39b56f43611df74a"
    fee_recipient: "0xabcf8e0d4e9587369b2301d0790347320302cc09"
    gas_limit: 1
    timestamp: 1
    signature: "0x1b66ac1fb663c9bc59509846d6ec05345bd908eda73e670af888da41af171505cc411d61252fb6cb3fa0017b679f8bb2305b26a285fa2737f175668d0dff91cc1b66ac1fb663c9bc59509846d6ec05345bd908eda73e670af888da41af171505"
`

func TestLoadConfig(test *testing.T) {
	assert := assert.New(test)

	config, err := mockrelay.LoadConfig(strings.NewReader(testConfig))
	require.NoError(test, err)

	assert.Equal(uint64(50), config.MaxLimit)
	require.Len(test, config.Validators, 1)
	assert.Equal(uint64(3), config.Validators[0].Slot)
	assert.Equal(uint64(12), config.Validators[0].ValidatorIndex)
	assert.Equal(
		"0xabcf8e0d4e9587369b2301d0790347320302cc09", config.Validators[0].FeeRecipient,
	)

	_, err = mockrelay.New(config, nil)
	assert.NoError(err)
}

func TestLoadConfigEmpty(test *testing.T) {
	config, err := mockrelay.LoadConfig(strings.NewReader(""))
	require.NoError(test, err)
	assert.Empty(test, config.Validators)
}

func TestLoadConfigInvalid(test *testing.T) {
	_, err := mockrelay.LoadConfig(strings.NewReader("validators: {"))
	assert.Error(test, err)
}

func TestLoadConfigFile(test *testing.T) {
	path := filepath.Join(test.TempDir(), "relay.yaml")
	require.NoError(test, os.WriteFile(path, []byte(testConfig), 0o600))

	config, err := mockrelay.LoadConfigFile(path)
	require.NoError(test, err)
	assert.Len(test, config.Validators, 1)

	_, err = mockrelay.LoadConfigFile(filepath.Join(test.TempDir(), "missing.yaml"))
	assert.Error(test, err)
}
