package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{Secret: s}
}

// GenerateToken signs a session token bound to the user id and the issue
// time. Tokens issued before the user's last password change are rejected
// by the auth middleware.
func (a Auth) GenerateToken(userID uint, email string, issuedAt time.Time) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(tokenTTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken accepts both "Bearer <token>" and a bare token string.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, domain.ErrInvalidToken
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dto.AuthResponse{}, domain.ErrTokenExpired
		}
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID == 0 {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return dto.AuthResponse{}, domain.ErrInvalidToken
	}
	if time.Now().Unix() > int64(exp) {
		return dto.AuthResponse{}, domain.ErrTokenExpired
	}

	return dto.AuthResponse{
		UserID: uint(userID),
		Email:  email,
		Iat:    int64(iat),
		Expiry: int64(exp),
	}, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
