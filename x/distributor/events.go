package distributor

import (
	"encoding/json"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// tagDistributed is the key of the tag emitted once per recipient after
// their claim units were transferred.
const tagDistributed = "distributor/distributed"

// DistributedRecord is the payload of a single distribution tag.
type DistributedRecord struct {
	// Asset is the underlying asset ticker.
	Asset string `json:"asset"`
	// Vault account the deposit went to.
	Vault poolshare.Address `json:"vault"`
	// Recipient of the claim units.
	Recipient poolshare.Address `json:"recipient"`
	// UnderlyingAmount is the recipient's original contribution.
	UnderlyingAmount sdkmath.Int `json:"underlying_amount"`
	// ClaimUnits transferred to the recipient.
	ClaimUnits sdkmath.Int `json:"claim_units"`
}

// Tag serializes the record into a transaction history tag.
func (r DistributedRecord) Tag() (poolshare.Tag, error) {
	value, err := json.Marshal(r)
	if err != nil {
		return poolshare.Tag{}, errors.Wrap(err, "cannot serialize record")
	}
	return poolshare.Tag{Key: []byte(tagDistributed), Value: value}, nil
}
