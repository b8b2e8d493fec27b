package helper

import (
	"errors"
	"fmt"
	"time"

	"restaurant_site/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 60 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Tokens signs and parses the HS256 session tokens.
type Tokens struct {
	Secret []byte
	Now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), Now: time.Now}
}

func (t *Tokens) sign(claim model.TokenClaim, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"accountId": claim.AccountId,
		"username":  claim.Username,
		"role":      claim.Role,
		"kind":      kind,
		"exp":       t.Now().Add(ttl).Unix(),
	})
	return token.SignedString(t.Secret)
}

func (t *Tokens) GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, "access", AccessTokenTTL)
}

func (t *Tokens) GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, "refresh", RefreshTokenTTL)
}

// ParseAccess validates an access token and returns its claims.
func (t *Tokens) ParseAccess(tokenString string) (model.TokenClaim, error) {
	return t.parse(tokenString, "access")
}

func (t *Tokens) ParseRefresh(tokenString string) (model.TokenClaim, error) {
	return t.parse(tokenString, "refresh")
}

func (t *Tokens) parse(tokenString, kind string) (model.TokenClaim, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.Now))
	if err != nil {
		return model.TokenClaim{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.TokenClaim{}, errors.New("invalid token claims")
	}
	if k, _ := claims["kind"].(string); k != kind {
		return model.TokenClaim{}, fmt.Errorf("expected %s token", kind)
	}
	accountId, ok := claims["accountId"].(float64)
	if !ok || accountId <= 0 {
		return model.TokenClaim{}, errors.New("invalid accountId in payload")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{AccountId: uint(accountId), Username: username, Role: role}, nil
}
