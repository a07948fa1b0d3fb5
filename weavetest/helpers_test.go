package weavetest

import (
	"testing"

	"github.com/iov-one/xsigners/weavetest/assert"
)

func TestNewConditionIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range NewAddresses(50) {
		assert.Nil(t, a.Validate())
		if seen[a.String()] {
			t.Fatalf("address %s returned twice", a)
		}
		seen[a.String()] = true
	}
	assert.Nil(t, NewCondition().Validate())
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, SequenceID(1))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, SequenceID(256))
}
