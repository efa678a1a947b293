package poolsharetest

import "github.com/iov-one/poolshare"

// Tx represents a poolshare transaction.
// Transaction represents a single message that is to be processed within
// this transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg poolshare.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ poolshare.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (poolshare.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a poolshare message.
// Message is a request processed within a single transaction.
type Msg struct {
	// RoutePath returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method call.
	Err error
}

var _ poolshare.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
