package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/store"
	"github.com/iov-one/xsigners/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a, b := weavetest.NewAddress(), weavetest.NewAddress()
	raw, err := json.Marshal([]GenesisAccount{
		{Address: a, Amount: 50},
		{Address: b, Amount: 7},
		{Address: a, Amount: 1},
	})
	require.NoError(t, err)

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(xsigners.Options{optKey: raw}, db))

	ctrl := NewController()
	got, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(51), got)
	got, err = ctrl.Balance(db, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)
}

func TestGenesisErrors(t *testing.T) {
	cases := map[string]struct {
		Raw     string
		WantErr *errors.Error
	}{
		"malformed":       {Raw: `{`, WantErr: errors.ErrInput},
		"invalid address": {Raw: `[{"address": "", "amount": 1}]`, WantErr: ErrInvalidAccount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Initializer{}.FromGenesis(xsigners.Options{optKey: []byte(tc.Raw)}, store.MemStore())
			assert.True(t, tc.WantErr.Is(err), "got %+v", err)
		})
	}
}
