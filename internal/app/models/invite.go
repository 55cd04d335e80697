package models

import "time"

// Invite mirrors the backend's invite resource.
type Invite struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	IsUsed    bool      `json:"isUsed"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateInviteRequest is the payload for POST /api/invites.
type CreateInviteRequest struct {
	Email string `json:"email"`
}

// Captcha is returned by GET /api/captcha. Image is a base64-encoded PNG
// rendered inline as a data URI on the registration page.
type Captcha struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}
