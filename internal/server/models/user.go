// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID             string    `db:"id"`
	UserName       string    `db:"username"`
	PasswordHash   string    `db:"password_hash"`
	DisplayName    string    `db:"display_name"`
	AvatarMimeType string    `db:"avatar_mime"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// HasAvatar reports whether a profile picture has been uploaded.
func (u *User) HasAvatar() bool {
	return u.AvatarMimeType != ""
}

// Avatar is a profile picture with its content type.
type Avatar struct {
	Data     []byte
	MimeType string
}
