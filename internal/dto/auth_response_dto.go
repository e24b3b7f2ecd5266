package dto

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ExchangeCodeRequest is the body of the Google sign-in exchange endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
