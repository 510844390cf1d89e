package objects

import "github.com/JaimeStill/live-gallery/pkg/query"

var projection = query.NewProjectionMap("public", "objects", "o").
	Project("id", "Id").
	Project("title", "Title").
	Project("description", "Description").
	Project("image_url", "ImageUrl").
	Project("created_by", "CreatedById").
	ProjectAs("u.username", "CreatedByUsername").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const ownerJoin = "JOIN public.users u ON u.id = o.created_by"

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}
