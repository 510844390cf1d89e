// Package middleware provides HTTP middleware composition and the
// cross-cutting handlers applied to every request.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System composes an ordered middleware chain.
type System struct {
	middleware []Middleware
}

func New() *System {
	return &System{
		middleware: make([]Middleware, 0),
	}
}

// Use appends a middleware to the chain. Middleware run in the order
// they were added.
func (s *System) Use(m Middleware) {
	s.middleware = append(s.middleware, m)
}

// Apply wraps handler with the registered chain.
func (s *System) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(s.middleware) - 1; i >= 0; i-- {
		wrapped = s.middleware[i](wrapped)
	}

	return wrapped
}
