package handler

import "social-server/internal/models"

// --- Request structs ---

type registerRequest struct {
	Username string `json:"username" binding:"required"`
}

type editMetadataRequest struct {
	About          string  `json:"about"`
	AvatarURL      *string `json:"avatar_url"`
	SecondaryToken *string `json:"secondary_token"`
	Nickname       *string `json:"nickname"`
}

type followRequest struct {
	User        string `json:"user" binding:"required"`
	IsFollowing string `json:"is_following" binding:"required"`
}

// --- Response structs ---

type registerResponse struct {
	Username string `json:"username"`
	// ID is disclosed exactly once at registration and never stored.
	ID       string `json:"id"`
	HashedID string `json:"id_hashed"`
}

type userResponse struct {
	Username  string              `json:"username"`
	HashedID  string              `json:"id_hashed"`
	Role      string              `json:"role"`
	CreatedAt string              `json:"created_at"`
	Metadata  userMetadataPayload `json:"metadata"`
}

// userMetadataPayload is the public metadata view; the stored secondary
// token hash is never exposed.
type userMetadataPayload struct {
	About     string  `json:"about"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Nickname  *string `json:"nickname,omitempty"`
}

type followResponse struct {
	Status string `json:"status"`
}

type followPageResponse struct {
	Edges  []models.Log `json:"edges"`
	Offset int          `json:"offset"`
	Count  int          `json:"count"`
}
