package service

import (
	"context"

	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/otel"
	"lodge/internal/domains/auth/model/dto"
	userModel "lodge/internal/domains/user/model"
	userRepo "lodge/internal/domains/user/repository"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/password"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func usernameFilter(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    username,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.userRepo.Exist(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check username")

		return err
	}

	if taken {
		return failure.Conflict("username already exists")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return err
	}

	if err = s.userRepo.Insert(ctx, req.ToModel(hash)); err != nil {
		log.Error().Err(err).Msg("failed to insert user")

		return err
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, err
	}

	// Same response for unknown user and wrong password.
	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized("invalid username or password")
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		return res, failure.Unauthorized("invalid username or password")
	}

	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.userRepo.Update(c, map[string]any{
			userModel.FieldLastLogin: timezone.Now(),
		}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to record last login")
		}
	}()

	res.FromModel(user, pair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	pair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return res, err
	}

	res.TokenPair = pair

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return err
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err = password.Verify(req.OldPassword, user.Password); err != nil {
		return failure.Unauthorized("invalid old password")
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return err
	}

	if err = s.userRepo.Update(ctx, map[string]any{
		userModel.FieldPassword:  hash,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user.Username,
	}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return err
	}

	return nil
}
