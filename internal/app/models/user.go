package models

// User mirrors the backend's user resource. The isDeleted flag is the
// soft-delete marker surfaced on the account page.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsDeleted bool   `json:"isDeleted"`
}

// RegisterRequest is the payload for POST /api/users/register.
type RegisterRequest struct {
	InviteCode  string `json:"inviteCode"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// LoginRequest is the payload for POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
