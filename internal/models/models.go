package models

import "time"

// User is the persisted account record. PassHash stays inside the storage and
// service layers; handlers only ever see PublicUser.
type User struct {
	ID        int64
	Name      string
	Email     string
	PassHash  []byte
	AvatarURL string
	CreatedAt time.Time
}

// NewUser carries the fields needed to insert an account. There is no
// plaintext password field anywhere in the persisted types.
type NewUser struct {
	Name     string
	Email    string
	PassHash []byte
}

// PublicUser is the safe representation returned to API callers.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips credential material from a stored user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Highlighted bool   `json:"highlighted"`
}

type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Book struct {
	ID          int64      `json:"id"`
	CategoryID  int64      `json:"category_id"`
	AuthorID    int64      `json:"author_id"`
	Name        string     `json:"name"`
	CoverURL    string     `json:"cover_url,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	Synopsis    string     `json:"synopsis,omitempty"`
	Highlighted bool       `json:"highlighted"`
	Author      *Author    `json:"author,omitempty"`
	Category    *Category  `json:"category,omitempty"`
}

// Message is the payload published to the mail queue and consumed by the
// email sender.
type Message struct {
	Email   string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
