package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	userMocks "lodge/internal/domains/user/mocks"
	userModel "lodge/internal/domains/user/model"
	"lodge/shared/failure"
	"lodge/shared/password"
)

type authServiceFixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newAuthServiceFixture(ctrl *gomock.Controller) *authServiceFixture {
	f := &authServiceFixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	cfg := &config.Config{}

	// The last-login timestamp is written on a background goroutine.
	f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.userRepo, cfg, mocks.NewOtel(), f.jwt)

	return f
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAuthServiceFixture(ctrl)

	req := dto.RegisterRequest{
		Username: "frontdesk",
		Password: "s3cret-password",
		FullName: "Front Desk",
		Role:     "staff",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful registration stores a hash, not the password",
			setupMock: func() {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.NotEqual(t, req.Password, user.Password)
						assert.NoError(t, password.Verify(req.Password, user.Password))

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			setupMock: func() {
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Register(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAuthServiceFixture(ctrl)

	hash, err := password.Hash("correct-password")
	assert.NoError(t, err)

	activeUser := userModel.User{
		ID:       "user-id",
		Username: "frontdesk",
		Password: hash,
		FullName: "Front Desk",
		Role:     "staff",
		Active:   true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Username: "frontdesk",
				Password: "correct-password",
			},
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)

				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), "user-id", "frontdesk", "staff").
					Return(jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Username: "frontdesk",
				Password: "wrong-password",
			},
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			req: dto.LoginRequest{
				Username: "nobody",
				Password: "correct-password",
			},
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated user",
			req: dto.LoginRequest{
				Username: "frontdesk",
				Password: "correct-password",
			},
			setupMock: func() {
				user := activeUser
				user.Active = false

				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req: dto.LoginRequest{
				Username: "frontdesk",
				Password: "correct-password",
			},
			setupMock: func() {
				f.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, res.AccessToken)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "frontdesk", res.User.Username)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAuthServiceFixture(ctrl)

	t.Run("valid refresh token", func(t *testing.T) {
		f.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "refresh-token").
			Return(jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		f.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "expired-token").
			Return(jwt.TokenPair{}, failure.Unauthorized("Invalid or expired token"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired-token"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAuthServiceFixture(ctrl)

	hash, err := password.Hash("old-password")
	assert.NoError(t, err)

	user := userModel.User{
		ID:       "user-id",
		Username: "frontdesk",
		Password: hash,
		Active:   true,
	}

	t.Run("wrong old password", func(t *testing.T) {
		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			OldPassword: "not-the-old-password",
			NewPassword: "brand-new-password",
		}, "user-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
