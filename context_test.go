package xsigners

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// changing the info, should modify the logger
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))

	// caller is unset by default
	_, ok := GetCaller(ctx)
	assert.False(t, ok)

	alice := NewCondition("test", "acct", []byte("alice")).Address()
	bobby := NewCondition("test", "acct", []byte("bobby")).Address()
	ctx = WithCaller(ctx, alice)
	caller, ok := GetCaller(ctx)
	assert.True(t, ok)
	assert.Equal(t, alice, caller)

	// a nested frame overwrites the caller
	nested := WithCaller(ctx, bobby)
	caller, _ = GetCaller(nested)
	assert.Equal(t, bobby, caller)
	caller, _ = GetCaller(ctx)
	assert.Equal(t, alice, caller)

	// empty address is not a caller
	_, ok = GetCaller(WithCaller(ctx, nil))
	assert.False(t, ok)

	_, ok = GetContract(ctx)
	assert.False(t, ok)
	contract := NewCondition("test", "contract", []byte{1}).Address()
	got, ok := GetContract(WithContract(ctx, contract))
	assert.True(t, ok)
	assert.Equal(t, contract, got)
}
