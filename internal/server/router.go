package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter registers "METHOD /path" patterns on an [http.ServeMux].
//
// A path registered only for GET answers other methods with 405. Every pattern is recorded so the
// router can report what it serves.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	routes      []string
}

var _ Handler = (*BasicRouter)(nil)

// NewBasicRouter creates an empty [BasicRouter].
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends middleware. It only wraps routes registered after the call.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

func (r *BasicRouter) register(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
	r.routes = append(r.routes, pattern)
}

// Handle registers handler for method and path, wrapped in the current middleware.
//
// The path may contain wildcards such as /playlists/{name}.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.register(strings.ToUpper(method)+" "+path, r.Apply(handler))
}

// HandleFunc is [BasicRouter.Handle] for plain functions.
func (r *BasicRouter) HandleFunc(method, path string, fn http.HandlerFunc) {
	r.Handle(method, path, fn)
}

// Handler registers h under every pattern returned by [Handler.Routes].
func (r *BasicRouter) Handler(h Handler) {
	wrapped := r.Apply(h)
	for _, route := range h.Routes() {
		r.register(route, wrapped)
	}
}

// Routes returns the registered patterns in sorted order.
func (r *BasicRouter) Routes() []string {
	routes := slices.Clone(r.routes)
	slices.Sort(routes)
	return routes
}

func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler so the first middleware passed to Use runs outermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(r.middlewares) {
		handler = mw(handler)
	}
	return handler
}
