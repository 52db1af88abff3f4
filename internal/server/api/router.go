package api

import (
	"context"
	"log/slog"
	"strings"
)

// Request carries route parameters and the payload that followed the path.
type Request struct {
	Ctx     context.Context
	Params  map[string]string
	Payload string
}

// Response holds the JSON line returned to the client.
type Response struct {
	JSON string
}

// HandlerFunc processes a request and fills the response. The logger is
// scoped to the connection.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// Router matches paths against patterns with {name} placeholders.
// Matching is case-insensitive; placeholder names keep their case.
type Router struct {
	routes []routeEntry
}

type routeEntry struct {
	parts   []string
	names   map[int]string
	handler HandlerFunc
}

func NewRouter() *Router { return &Router{} }

// Register adds a handler for a pattern like "dialog/{name}/open".
func (r *Router) Register(pattern string, handler HandlerFunc) {
	orig := strings.Split(pattern, "/")
	e := routeEntry{parts: make([]string, len(orig)), names: map[int]string{}, handler: handler}
	for i, p := range orig {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			e.names[i] = p[1 : len(p)-1]
		}
		e.parts[i] = strings.ToLower(p)
	}
	r.routes = append(r.routes, e)
}

// Match returns the first handler whose pattern matches path, with the
// captured parameters. It returns nil when nothing matches.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	parts := strings.Split(strings.ToLower(path), "/")
	for _, rt := range r.routes {
		if len(rt.parts) != len(parts) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i := range parts {
			if name, isParam := rt.names[i]; isParam {
				params[name] = parts[i]
				continue
			}
			if rt.parts[i] != parts[i] {
				ok = false
				break
			}
		}
		if ok {
			return rt.handler, params
		}
	}
	return nil, nil
}
