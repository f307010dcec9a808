package client

import (
	"context"

	"learnhub/internal/domain"
)

type AuthClient struct {
	backend
}

func NewAuthClient(url string) *AuthClient {
	return &AuthClient{backend: newBackend(url)}
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (Tokens, error) {
	var t Tokens
	err := c.doJSON(ctx, "POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &t)
	return t, err
}

func (c *AuthClient) Signup(ctx context.Context, email, password, firstName, lastName, otp string) (string, error) {
	var out struct {
		UserID string `json:"user_id"`
	}
	err := c.doJSON(ctx, "POST", "/auth/signup", "", map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
		"otp":        otp,
	}, &out)
	return out.UserID, err
}

func (c *AuthClient) SendOTP(ctx context.Context, email string) error {
	return c.doJSON(ctx, "POST", "/auth/otp", "", map[string]string{"email": email}, nil)
}

func (c *AuthClient) Logout(ctx context.Context, refreshToken string) error {
	return c.doJSON(ctx, "POST", "/auth/logout", "", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

func (c *AuthClient) GetProfile(ctx context.Context, token string) (*domain.Profile, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var p domain.Profile
	if err := c.doJSON(ctx, "GET", "/auth/profile", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
