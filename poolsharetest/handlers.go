package poolsharetest

import "github.com/iov-one/poolshare"

// Handler implements poolshare.Handler interface, counting the calls and
// returning configured results.
type Handler struct {
	checkCall   int
	CheckResult poolshare.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult poolshare.DeliverResult
	DeliverErr    error
}

var _ poolshare.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
