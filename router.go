package poolshare

import (
	"regexp"

	"github.com/iov-one/poolshare/errors"
)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_]+/[a-zA-Z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
type Router struct {
	routes map[string]Handler
}

var _ Registry = (*Router)(nil)
var _ Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Handle adds a new Handler for the given path. Panics on duplicate or
// invalid path as this is a configuration error.
func (r *Router) Handle(path string, h Handler) {
	if !isPath(path) {
		panic(errors.ErrInput.Newf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(errors.ErrDuplicate.Newf("path already registered: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a noSuchPath
// handler if none is registered.
func (r *Router) handler(path string) Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path}
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error) {
	return r.handler(GetPath(tx)).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error) {
	return r.handler(GetPath(tx)).Deliver(ctx, db, tx)
}

// noSuchPathHandler always returns ErrNotFound for the path it was
// created for.
type noSuchPathHandler struct {
	path string
}

var _ Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(Context, KVStore, Tx) (*CheckResult, error) {
	return nil, errors.ErrNotFound.Newf("no handler for message path: %q", h.path)
}

func (h noSuchPathHandler) Deliver(Context, KVStore, Tx) (*DeliverResult, error) {
	return nil, errors.ErrNotFound.Newf("no handler for message path: %q", h.path)
}
