package main

import (
	"encoding/json"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/x/distributor"
	"github.com/iov-one/poolshare/x/token"
)

// envelope is a single transaction of a batch file. The message payload
// is decoded based on the declared path.
type envelope struct {
	Path string          `json:"path"`
	Msg  json.RawMessage `json:"msg"`
}

var _ poolshare.Tx = (*envelope)(nil)

func (e *envelope) GetMsg() (poolshare.Msg, error) {
	var msg poolshare.Msg
	switch e.Path {
	case "token/send":
		msg = &token.SendMsg{}
	case "distributor/distribute":
		msg = &distributor.DistributeMsg{}
	default:
		return nil, errors.ErrMsg.Newf("unknown message path: %q", e.Path)
	}
	if err := json.Unmarshal(e.Msg, msg); err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q message", e.Path)
	}
	return msg, nil
}
