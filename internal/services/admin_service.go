package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

var validate = validator.New()

type AdminService struct {
	authRepo models.AdminAuthRepo
}

func NewAdminService(authRepo models.AdminAuthRepo) *AdminService {
	return &AdminService{
		authRepo: authRepo,
	}
}

func (as *AdminService) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}
	if err := validate.Var(password, "required"); err != nil {
		return nil, fmt.Errorf("password is required: %w", err)
	}
	resp, err := as.authRepo.AuthenticateAdmin(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("authentication failed: empty token response")
	}
	return resp, nil
}

func (as *AdminService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	resp, err := as.authRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return resp, nil
}
