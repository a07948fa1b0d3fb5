package xsigners

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/xsigners/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{"dummy": {"threshold": 2}}`), &opts))

	var value struct {
		Threshold int `json:"threshold"`
	}
	require.NoError(t, opts.ReadOptions("dummy", &value))
	assert.Equal(t, 2, value.Threshold)

	// missing keys are ignored
	var missing struct{}
	require.NoError(t, opts.ReadOptions("missing", &missing))
}

type recordingInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(Options, KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	init := ChainInitializers(
		recordingInit{name: "a", calls: &calls},
		recordingInit{name: "b", calls: &calls, err: errors.ErrState},
		recordingInit{name: "c", calls: &calls},
	)
	err := init.FromGenesis(Options{}, nil)
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, []string{"a", "b"}, calls)
}
