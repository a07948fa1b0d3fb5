package orm

import (
	"github.com/iov-one/xsigners/errors"
)

// Orm reserves 100~109 error codes

// ErrSchemaVersion is returned when a stored value was written using an
// unknown schema version.
var ErrSchemaVersion = errors.Register(100, "unknown schema version")
