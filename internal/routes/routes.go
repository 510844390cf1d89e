// Package routes registers HTTP route groups onto a ServeMux.
package routes

import (
	"log/slog"
	"net/http"
)

// Route binds a handler to a method and path pattern.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a shared prefix. Children inherit the
// parent prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// System accumulates routes and builds the final mux.
type System struct {
	routes []Route
	logger *slog.Logger
}

func New(logger *slog.Logger) *System {
	return &System{
		routes: make([]Route, 0),
		logger: logger.With("system", "routes"),
	}
}

// RegisterRoute adds a single route.
func (s *System) RegisterRoute(route Route) {
	s.routes = append(s.routes, route)
}

// RegisterGroup adds a group's routes, prefixing each pattern, then
// recurses into its children.
func (s *System) RegisterGroup(group Group) {
	for _, route := range group.Routes {
		s.RegisterRoute(Route{
			Method:  route.Method,
			Pattern: group.Prefix + route.Pattern,
			Handler: route.Handler,
		})
	}

	for _, child := range group.Children {
		s.RegisterGroup(Group{
			Prefix:   group.Prefix + child.Prefix,
			Routes:   child.Routes,
			Children: child.Children,
		})
	}
}

// Build constructs the ServeMux from all registered routes.
func (s *System) Build() *http.ServeMux {
	mux := http.NewServeMux()

	for _, route := range s.routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
		s.logger.Debug("route registered", "method", route.Method, "pattern", route.Pattern)
	}

	return mux
}
