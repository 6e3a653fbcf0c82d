package domain

import "time"

// User is a stored account. PasswordHash is the scrypt-encoded credential
// and must never leave the service; PublicUser is the outward shape.
type User struct {
	ID           int64
	Email        string // unique, enforced by the store
	Username     string
	Name         string
	Bio          string
	AvatarURL    string
	PasswordHash string // "hex(salt).hex(digest)", see pkg/cryptox
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Public strips the credential material from a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}
