package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer         = "openmusic-api"
	minJWTSecretBytes = 32
	accessTokenTTL    = 30 * time.Minute
	refreshTokenTTL   = 7 * 24 * time.Hour
)

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

var (
	accessSecret  []byte
	refreshSecret []byte
	jwtSecretErr  error
	jwtSecretOnce sync.Once
)

func EnsureJWTReady() error {
	_, _, err := getJWTSecrets()
	return err
}

func getJWTSecrets() ([]byte, []byte, error) {
	jwtSecretOnce.Do(func() {
		access := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_KEY"))
		refresh := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_KEY"))
		if access == "" || refresh == "" {
			jwtSecretErr = errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY are required")
			return
		}
		if len(access) < minJWTSecretBytes || len(refresh) < minJWTSecretBytes {
			jwtSecretErr = fmt.Errorf("token keys must be at least %d characters", minJWTSecretBytes)
			return
		}
		accessSecret = []byte(access)
		refreshSecret = []byte(refresh)
	})

	if jwtSecretErr != nil {
		return nil, nil, jwtSecretErr
	}
	return accessSecret, refreshSecret, nil
}

// GenerateAccessToken issues a short-lived access token for a user.
func GenerateAccessToken(userID string) (string, error) {
	access, _, err := getJWTSecrets()
	if err != nil {
		return "", err
	}
	return signToken(userID, access, accessTokenTTL)
}

// GenerateRefreshToken issues a refresh token; validity additionally requires
// the token to be present in the authentications table.
func GenerateRefreshToken(userID string) (string, error) {
	_, refresh, err := getJWTSecrets()
	if err != nil {
		return "", err
	}
	return signToken(userID, refresh, refreshTokenTTL)
}

func signToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("invalid user ID")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims.
func ValidateAccessToken(tokenString string) (*Claims, error) {
	access, _, err := getJWTSecrets()
	if err != nil {
		return nil, err
	}
	return parseToken(tokenString, access)
}

// ValidateRefreshToken validates a refresh token signature and returns the user id.
func ValidateRefreshToken(tokenString string) (string, error) {
	_, refresh, err := getJWTSecrets()
	if err != nil {
		return "", err
	}

	claims, err := parseToken(tokenString, refresh)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, errors.New("token is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return nil, errors.New("invalid token user")
	}

	if claims.Issuer != jwtIssuer {
		return nil, errors.New("invalid token issuer")
	}

	if claims.Subject != claims.UserID {
		return nil, errors.New("invalid token subject")
	}

	return claims, nil
}
