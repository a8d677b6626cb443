package dto

import (
	"lodge/infras/jwt"
	userModel "lodge/internal/domains/user/model"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role"      validate:"required,oneof=admin staff"`
}

func (r *RegisterRequest) ToModel(passwordHash string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: passwordHash,
		FullName: r.FullName,
		Role:     r.Role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  r.Username,
			ModifiedBy: r.Username,
		},
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	jwt.TokenPair
	User UserInfo `json:"user"`
}

func (l *LoginResponse) FromModel(user userModel.User, pair jwt.TokenPair) {
	l.TokenPair = pair
	l.User = UserInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	jwt.TokenPair
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}
