package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthorProfile is the public slice of a user attached to posts and comments.
type AuthorProfile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

func (u *User) Profile() AuthorProfile {
	return AuthorProfile{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}
