package model

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
