package users

import "github.com/JaimeStill/live-gallery/pkg/query"

var projection = query.NewProjectionMap("public", "users", "u").
	Project("id", "Id").
	Project("username", "Username").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")
