package token

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/poolsharetest"
	"github.com/iov-one/poolshare/poolsharetest/assert"
	"github.com/iov-one/poolshare/store"
)

func TestSendHandler(t *testing.T) {
	aliceCond := poolsharetest.NewCondition()
	alice := aliceCond.Address()
	bob := poolsharetest.NewAddress()

	cases := map[string]struct {
		msg       *SendMsg
		signer    poolshare.Condition
		initial   int64
		wantErr   *errors.Error
		wantAlice string
		wantBob   string
	}{
		"successful transfer": {
			msg: &SendMsg{
				Source:      alice,
				Destination: bob,
				Ticker:      "IOV",
				Amount:      sdkmath.NewInt(40),
			},
			signer:    aliceCond,
			initial:   100,
			wantAlice: "60",
			wantBob:   "40",
		},
		"missing signature": {
			msg: &SendMsg{
				Source:      alice,
				Destination: bob,
				Ticker:      "IOV",
				Amount:      sdkmath.NewInt(40),
			},
			signer:  poolsharetest.NewCondition(),
			initial: 100,
			wantErr: errors.ErrUnauthorized,
		},
		"insufficient funds": {
			msg: &SendMsg{
				Source:      alice,
				Destination: bob,
				Ticker:      "IOV",
				Amount:      sdkmath.NewInt(101),
			},
			signer:  aliceCond,
			initial: 100,
			wantErr: errors.ErrInsufficientAmount,
		},
		"non-positive amount": {
			msg: &SendMsg{
				Source:      alice,
				Destination: bob,
				Ticker:      "IOV",
				Amount:      sdkmath.ZeroInt(),
			},
			signer:  aliceCond,
			initial: 100,
			wantErr: errors.ErrAmount,
		},
		"invalid ticker": {
			msg: &SendMsg{
				Source:      alice,
				Destination: bob,
				Ticker:      "water",
				Amount:      sdkmath.NewInt(1),
			},
			signer:  aliceCond,
			initial: 100,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Issue(db, "IOV", alice, sdkmath.NewInt(tc.initial)))

			h := NewSendHandler(&poolsharetest.Auth{Signer: tc.signer}, ctrl)
			tx := &poolsharetest.Tx{Msg: tc.msg}
			ctx := context.Background()

			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("check: want %v, got %+v", tc.wantErr, err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %v, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			if len(res.Tags) != 1 || string(res.Tags[0].Key) != "token/sent" {
				t.Fatalf("want a single token/sent tag, got %v", res.Tags)
			}

			balance, _ := ctrl.Balance(db, "IOV", alice)
			assert.Equal(t, tc.wantAlice, balance.String())
			balance, _ = ctrl.Balance(db, "IOV", bob)
			assert.Equal(t, tc.wantBob, balance.String())
		})
	}
}

func TestInitializerFromGenesis(t *testing.T) {
	alice := poolsharetest.NewAddress()

	opts := poolshare.Options{
		"token": []byte(`[
			{"address": "` + alice.String() + `", "ticker": "IOV", "amount": "1000"}
		]`),
	}

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	balance, err := NewController().Balance(db, "IOV", alice)
	assert.Nil(t, err)
	assert.Equal(t, "1000", balance.String())
}
