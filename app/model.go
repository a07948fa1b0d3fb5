package app

import (
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

var _ orm.Model = (*ContractInfo)(nil)

// Validate requires the code name to be set.
func (m *ContractInfo) Validate() error {
	if m.Code == "" {
		return errors.Field("Code", errors.ErrEmpty, "required")
	}
	return nil
}

var _ orm.Model = (*Sequence)(nil)

func (m *Sequence) Validate() error { return nil }
