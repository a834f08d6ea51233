package auth

import "go-leave/internal/session"

type LoginRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        session.Actor `json:"user"`
}
