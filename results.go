package poolshare

// Tag is a key value pair attached to a delivery result. Tags can be used
// by the surrounding infrastructure to index and search the transaction
// history.
type Tag struct {
	Key   []byte
	Value []byte
}

// NewTag is a shortcut to create a tag from two strings.
func NewTag(key, value string) Tag {
	return Tag{Key: []byte(key), Value: []byte(value)}
}

// CheckResult captures any non-error result of a transaction check,
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// NewCheck sets the gas allocated and the log message but no more info.
// These are the most common info needed to be set by the Handler.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// DeliverResult captures any non-error result of a transaction delivery,
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags, if present, can be used to index and search the transaction
	// history
	Tags []Tag
	// GasUsed is the units of work performed by this delivery
	GasUsed int64
}
