package vault

import (
	"fmt"
	"strings"
)

// Query modes. The mode is the part of the ABCI query path after '?'.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryFunc lets a plain function serve as a QueryHandler.
type QueryFunc func(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)

func (fn QueryFunc) Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error) {
	return fn(db, mod, data)
}

// QueryRouter dispatches queries by path, in the spirit of
// http.ServeMux. Paths are stored with a leading slash.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every registration function with this router.
func (r QueryRouter) RegisterAll(registrations ...func(QueryRouter)) {
	for _, register := range registrations {
		register(r)
	}
}

// Register binds h to path. Binding the same path twice panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
