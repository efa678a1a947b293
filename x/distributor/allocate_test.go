package distributor

import (
	"testing"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/poolsharetest"
	"github.com/iov-one/poolshare/poolsharetest/assert"
)

func TestAllocate(t *testing.T) {
	addrs := make([]poolshare.Address, 4)
	for i := range addrs {
		addrs[i] = poolsharetest.NewAddress()
	}

	cases := map[string]struct {
		minted    int64
		basis     int64
		amounts   []int64
		wantUnits []int64
		wantErr   *errors.Error
	}{
		"exact pro-rata with no dust": {
			minted:    1000,
			basis:     1000,
			amounts:   []int64{300, 700},
			wantUnits: []int64{300, 700},
		},
		"last recipient absorbs rounding dust": {
			minted:    10,
			basis:     9,
			amounts:   []int64{3, 3, 3},
			wantUnits: []int64{3, 3, 4},
		},
		"single recipient receives everything": {
			minted:    999,
			basis:     123,
			amounts:   []int64{123},
			wantUnits: []int64{999},
		},
		"uneven amounts conserve minted units": {
			minted:    13,
			basis:     7,
			amounts:   []int64{1, 2, 4},
			wantUnits: []int64{1, 3, 9},
		},
		"zero minted assigns zero shares": {
			minted:    0,
			basis:     100,
			amounts:   []int64{40, 60},
			wantUnits: []int64{0, 0},
		},
		"minted smaller than basis floors to last": {
			minted:    1,
			basis:     100,
			amounts:   []int64{50, 50},
			wantUnits: []int64{0, 1},
		},
		"no recipients": {
			minted:  10,
			basis:   10,
			amounts: nil,
			wantErr: errors.ErrEmpty,
		},
		"negative minted": {
			minted:  -1,
			basis:   10,
			amounts: []int64{10},
			wantErr: errors.ErrAmount,
		},
		"zero basis": {
			minted:  10,
			basis:   0,
			amounts: []int64{10},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			recipients := make([]Recipient, len(tc.amounts))
			for i, a := range tc.amounts {
				recipients[i] = Recipient{
					Address: addrs[i],
					Amount:  sdkmath.NewInt(a),
				}
			}
			shares, err := Allocate(sdkmath.NewInt(tc.minted), sdkmath.NewInt(tc.basis), recipients)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q, got %+v", tc.wantErr, err)
				}
				return
			}
			assert.Nil(t, err)

			if len(shares) != len(tc.wantUnits) {
				t.Fatalf("want %d shares, got %d", len(tc.wantUnits), len(shares))
			}
			sum := sdkmath.ZeroInt()
			for i, s := range shares {
				if !s.Address.Equals(recipients[i].Address) {
					t.Fatalf("share %d assigned to the wrong account", i)
				}
				if want := sdkmath.NewInt(tc.wantUnits[i]); !s.Units.Equal(want) {
					t.Fatalf("share %d: want %s units, got %s", i, want, s.Units)
				}
				sum = sum.Add(s.Units)
			}
			if want := sdkmath.NewInt(tc.minted); !sum.Equal(want) {
				t.Fatalf("shares do not conserve minted units: want %s, got %s", want, sum)
			}
		})
	}
}

func TestAllocateFloorNeverExceedsProRata(t *testing.T) {
	// Any non-last share must be at most its exact pro-rata value, so
	// the remainder for the last recipient cannot go negative.
	recipients := []Recipient{
		{Address: poolsharetest.NewAddress(), Amount: sdkmath.NewInt(1)},
		{Address: poolsharetest.NewAddress(), Amount: sdkmath.NewInt(1)},
		{Address: poolsharetest.NewAddress(), Amount: sdkmath.NewInt(1)},
	}
	shares, err := Allocate(sdkmath.NewInt(2), sdkmath.NewInt(3), recipients)
	assert.Nil(t, err)
	assert.Equal(t, true, shares[0].Units.IsZero())
	assert.Equal(t, true, shares[1].Units.IsZero())
	assert.Equal(t, true, shares[2].Units.Equal(sdkmath.NewInt(2)))
}
