package users

import "github.com/JaimeStill/live-gallery/pkg/repository"

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// credential is the internal login projection including the password hash.
type credential struct {
	User User
	Hash string
}

func scanCredential(s repository.Scanner) (credential, error) {
	var c credential
	err := s.Scan(
		&c.User.ID,
		&c.User.Username,
		&c.Hash,
		&c.User.CreatedAt,
		&c.User.UpdatedAt,
	)
	return c, err
}
