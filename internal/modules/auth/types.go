package auth

type OAuthCallbackDTO struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// SessionResponse is the sign-in payload handed to the dashboard.
type SessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
