package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/failure"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TokenID  string `json:"token_id"`
	Type     string `json:"type"`
	jwtLib.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, username, role string) (TokenPair, error)
	ValidateToken(ctx context.Context, tokenString, tokenType string) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (TokenPair, error)
}

type jwtImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) JWT {
	if config.JWT.SecretKey == constant.Empty {
		log.Fatal().Msg("JWT_SECRET_KEY is not configured")
	}

	return &jwtImpl{
		config: config,
		otel:   otel,
	}
}

func (j *jwtImpl) GenerateTokenPair(ctx context.Context, userID, username, role string) (TokenPair, error) {
	_, scope := j.otel.NewScope(ctx, constant.OtelJWTScopeName, "GenerateTokenPair")
	defer scope.End()

	accessToken, err := j.generateToken(userID, username, role, TokenTypeAccess, time.Duration(j.config.JWT.AccessTokenDuration)*time.Minute)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("[GenerateTokenPair] Failed to sign access token")
		return TokenPair{}, failure.InternalError(err)
	}

	refreshToken, err := j.generateToken(userID, username, role, TokenTypeRefresh, time.Duration(j.config.JWT.RefreshTokenDuration)*time.Minute)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("[GenerateTokenPair] Failed to sign refresh token")
		return TokenPair{}, failure.InternalError(err)
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (j *jwtImpl) generateToken(userID, username, role, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		TokenID:  uuid.New().String(),
		Type:     tokenType,
		RegisteredClaims: jwtLib.RegisteredClaims{
			Issuer:    j.config.JWT.Issuer,
			Subject:   userID,
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, claims)

	return token.SignedString([]byte(j.config.JWT.SecretKey))
}

func (j *jwtImpl) ValidateToken(ctx context.Context, tokenString, tokenType string) (*Claims, error) {
	_, scope := j.otel.NewScope(ctx, constant.OtelJWTScopeName, "ValidateToken")
	defer scope.End()

	token, err := jwtLib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtLib.Token) (any, error) {
		if _, ok := token.Method.(*jwtLib.SigningMethodHMAC); !ok {
			return nil, failure.Unauthorized("Unexpected token signing method")
		}
		return []byte(j.config.JWT.SecretKey), nil
	})
	if err != nil {
		scope.TraceError(err)
		return nil, failure.Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, failure.Unauthorized("Invalid token claims")
	}

	if claims.Type != tokenType {
		return nil, failure.Unauthorized("Invalid token type")
	}

	return claims, nil
}

func (j *jwtImpl) RefreshTokens(ctx context.Context, refreshToken string) (TokenPair, error) {
	ctx, scope := j.otel.NewScope(ctx, constant.OtelJWTScopeName, "RefreshTokens")
	defer scope.End()

	claims, err := j.ValidateToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		scope.TraceError(err)
		return TokenPair{}, err
	}

	return j.GenerateTokenPair(ctx, claims.UserID, claims.Username, claims.Role)
}

// ExtractTokenFromHeader strips the Bearer prefix from an Authorization header value.
func ExtractTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", failure.Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", failure.Unauthorized("Invalid authorization header format")
	}

	return parts[1], nil
}
