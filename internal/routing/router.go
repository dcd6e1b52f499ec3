// Package routing implements the RoutingMap described in spec.md §4.6: a
// per-HTTP-method radix tree with "{name}" parameter capture and a static
// fast path for routes with no parameters. Grounded on
// _examples/MiraiMindz-watt/bolt/core/router.go, simplified to drop that
// file's unsafe/cache-line zero-copy machinery (a poor stylistic fit for
// this project's teaching-kernel framing) along with its indices-based
// child dispatch and priority reordering: children are scanned linearly,
// static children ahead of the parameter child.
package routing

import (
	"errors"
	"strings"
)

// ErrRouteConflict is returned by Add when a new route's pattern
// disagrees with an already-registered route at the same position (e.g.
// registering both "/users/{id}" and "/users/{name}"), or when the exact
// same pattern is registered twice. A static segment beside a parameter
// segment at the same depth ("/users/me" and "/users/{id}") is not a
// conflict: the static segment wins at lookup.
var ErrRouteConflict = errors.New("routing: conflicting route pattern")

// ErrRouteNotFound is returned by Lookup when no route matches path under
// any method.
var ErrRouteNotFound = errors.New("routing: no matching route")

// ErrMethodNotAllowed is returned by Lookup when path matches a
// registered route under a different HTTP method — spec.md §7's
// MethodError / 405 case.
var ErrMethodNotAllowed = errors.New("routing: path registered under a different method")

// Params holds the path parameters captured for a matched route.
type Params map[string]string

// node is one edge-label in a method's radix tree. Children are tried in
// order; static children come before the single wildcard child so a
// concrete segment always wins over a parameter at the same depth.
type node struct {
	label    string
	isParam  bool
	paramKey string
	children []*node
	handler  any
}

func (n *node) findChild(label string) *node {
	for _, c := range n.children {
		if !c.isParam && c.label == label {
			return c
		}
	}
	return nil
}

func (n *node) findOrCreateChild(segment string) (*node, error) {
	isParam, key := paramName(segment)
	if isParam {
		for _, c := range n.children {
			if c.isParam && c.paramKey != key {
				return nil, ErrRouteConflict
			}
			if c.isParam && c.paramKey == key {
				return c, nil
			}
		}
		child := &node{label: segment, isParam: true, paramKey: key}
		n.children = append(n.children, child)
		return child, nil
	}

	if existing := n.findChild(segment); existing != nil {
		return existing, nil
	}
	child := &node{label: segment}
	// static children sort before parameter children so lookup always
	// prefers an exact match at this depth.
	inserted := false
	for i, c := range n.children {
		if c.isParam {
			n.children = append(n.children[:i], append([]*node{child}, n.children[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		n.children = append(n.children, child)
	}
	return child, nil
}

func paramName(segment string) (bool, string) {
	if len(segment) >= 2 && segment[0] == '{' && segment[len(segment)-1] == '}' {
		return true, segment[1 : len(segment)-1]
	}
	if len(segment) >= 2 && segment[0] == ':' {
		return true, segment[1:]
	}
	return false, ""
}

// Router is a RoutingMap for a single HTTP method. Most services want
// Map, below, which owns one Router per method plus the static fast
// path.
type Router struct {
	root *node
}

func newRouter() *Router {
	return &Router{root: &node{}}
}

// Add registers handler at pattern, e.g. "/users/{id}/posts/{postID}".
// Returns ErrRouteConflict if pattern disagrees with an existing
// registration.
func (r *Router) Add(pattern string, handler any) error {
	segments := splitPath(pattern)
	cur := r.root
	for _, seg := range segments {
		child, err := cur.findOrCreateChild(seg)
		if err != nil {
			return err
		}
		cur = child
	}
	if cur.handler != nil {
		return ErrRouteConflict
	}
	cur.handler = handler
	return nil
}

// Lookup finds the handler registered for path, if any, along with any
// captured path parameters.
func (r *Router) Lookup(path string) (any, Params, error) {
	segments := splitPath(path)
	cur := r.root
	var params Params
	for _, seg := range segments {
		next := cur.findChild(seg)
		if next == nil {
			for _, c := range cur.children {
				if c.isParam {
					next = c
					break
				}
			}
		}
		if next == nil {
			return nil, nil, ErrRouteNotFound
		}
		if next.isParam {
			if params == nil {
				params = make(Params, 2)
			}
			params[next.paramKey] = seg
		}
		cur = next
	}
	if cur.handler == nil {
		return nil, nil, ErrRouteNotFound
	}
	return cur.handler, params, nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Map is a RoutingMap: one radix Router per HTTP method, plus a static
// fast path (exact string match, no allocation) for parameter-free
// routes, as spec.md §4.6 calls for.
type Map struct {
	static  map[string]map[string]any // method -> path -> handler
	dynamic map[string]*Router        // method -> radix tree
}

func NewMap() *Map {
	return &Map{
		static:  make(map[string]map[string]any),
		dynamic: make(map[string]*Router),
	}
}

// Add registers handler for method+pattern. Patterns containing no
// "{name}"/":name" segments are registered on the static fast path;
// others go into the method's radix tree.
func (m *Map) Add(method, pattern string, handler any) error {
	if !strings.Contains(pattern, "{") && !strings.ContainsAny(pattern, ":") {
		if m.static[method] == nil {
			m.static[method] = make(map[string]any)
		}
		if _, exists := m.static[method][pattern]; exists {
			return ErrRouteConflict
		}
		m.static[method][pattern] = handler
		return nil
	}
	r, ok := m.dynamic[method]
	if !ok {
		r = newRouter()
		m.dynamic[method] = r
	}
	return r.Add(pattern, handler)
}

// Lookup resolves method+path to a handler and any captured parameters.
// If path matches no route under method but does match one under some
// other registered method, it returns ErrMethodNotAllowed instead of
// ErrRouteNotFound, so callers can answer 405 rather than 404.
func (m *Map) Lookup(method, path string) (any, Params, error) {
	if byPath, ok := m.static[method]; ok {
		if h, ok := byPath[path]; ok {
			return h, nil, nil
		}
	}
	if r, ok := m.dynamic[method]; ok {
		if h, params, err := r.Lookup(path); err == nil {
			return h, params, nil
		}
	}
	if m.matchesOtherMethod(method, path) {
		return nil, nil, ErrMethodNotAllowed
	}
	return nil, nil, ErrRouteNotFound
}

// matchesOtherMethod reports whether path resolves under any registered
// method other than method.
func (m *Map) matchesOtherMethod(method, path string) bool {
	for other, byPath := range m.static {
		if other == method {
			continue
		}
		if _, ok := byPath[path]; ok {
			return true
		}
	}
	for other, r := range m.dynamic {
		if other == method {
			continue
		}
		if _, _, err := r.Lookup(path); err == nil {
			return true
		}
	}
	return false
}
