package poolsharetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/poolshare"
)

// condCounter is used to generate unique conditions. Each condition is
// derived from a unique sequence value.
var condCounter uint64

// NewCondition returns a condition that is unique for the lifetime of
// the process.
func NewCondition() poolshare.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&condCounter, 1))
	return poolshare.NewCondition("test", "seq", raw)
}

// NewAddress returns an address that is unique for the lifetime of the
// process.
func NewAddress() poolshare.Address {
	return NewCondition().Address()
}
