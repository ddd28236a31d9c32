package usecase

import (
	"strings"

	"kilo-share/internal/pkg/jwt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=token_validator.go -destination=../testutil/mock/usecase/token_validator_mock.go -package=usecasemock

// TokenValidator resolves a bearer token issued by the identity provider to
// the caller's user id.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return jwtTokenValidator{svc: svc}
}

func (v jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, jwt.ErrInvalidToken
	}
	claims, err := v.svc.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.Identity()
}
