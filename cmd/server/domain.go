package main

import (
	"github.com/JaimeStill/live-gallery/internal/objects"
	"github.com/JaimeStill/live-gallery/internal/users"
)

// Domain holds the business capability systems.
type Domain struct {
	Users   users.System
	Objects objects.System
}

func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Users: users.New(
			runtime.Database.Connection(),
			runtime.Tokens,
			runtime.Logger,
		),
		Objects: objects.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Hub,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
