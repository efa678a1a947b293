package distributor

import (
	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Policy holds the distribution rules that vary between deployments.
type Policy struct {
	// MaxRecipients bounds the recipient list length of a single
	// distribution. Zero disables the check.
	MaxRecipients int `json:"max_recipients"`

	// AllowVaultRecipient permits the vault account itself to appear in
	// the recipient list.
	AllowVaultRecipient bool `json:"allow_vault_recipient"`

	// UseVaultValuation switches the pro-rata basis from the raw
	// aggregate of input amounts to the vault valuation of the minted
	// units, queried after the deposit. The two differ once the vault
	// exchange rate drifts from 1:1.
	UseVaultValuation bool `json:"use_vault_valuation"`
}

// DefaultPolicy returns the distribution policy used unless the
// genesis configuration says otherwise.
func DefaultPolicy() Policy {
	return Policy{
		MaxRecipients:       100,
		AllowVaultRecipient: false,
		UseVaultValuation:   false,
	}
}

func (p Policy) Validate() error {
	if p.MaxRecipients < 0 {
		return errors.Wrap(errors.ErrInput, "max recipients must not be negative")
	}
	return nil
}

// LoadPolicy reads the distributor policy from the genesis options,
// falling back to the default policy if none is configured.
func LoadPolicy(opts poolshare.Options) (Policy, error) {
	p := DefaultPolicy()
	if err := opts.ReadOptions("distributor", &p); err != nil {
		return Policy{}, errors.Wrap(err, "cannot load distributor genesis")
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
