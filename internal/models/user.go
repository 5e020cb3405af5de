package models

import "time"

// UserMetadata is the structured blob attached to every account row.
// Field names are fixed by the sh_users storage format.
type UserMetadata struct {
	About          string  `json:"about"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	SecondaryToken *string `json:"secondary_token,omitempty"`
	Nickname       *string `json:"nickname,omitempty"`
}

// User represents an account row in sh_users.
// HashedID is the one-way derived public identifier; the unhashed id is
// disclosed to the caller exactly once at creation and never stored.
type User struct {
	Username  string       `db:"username" json:"username"`
	HashedID  string       `db:"id_hashed" json:"id_hashed"`
	Role      Role         `db:"role" json:"role"`
	CreatedAt time.Time    `db:"timestamp" json:"created_at"`
	Metadata  UserMetadata `db:"metadata" json:"metadata"`
}
