package objects

import "github.com/JaimeStill/live-gallery/pkg/repository"

func scanObject(s repository.Scanner) (Object, error) {
	var o Object
	err := s.Scan(
		&o.ID,
		&o.Title,
		&o.Description,
		&o.ImageURL,
		&o.CreatedBy.ID,
		&o.CreatedBy.Username,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
