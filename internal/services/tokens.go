package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yelpcamp/internal/models"
)

const (
	AccessTokenTTL  = 72 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour

	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// Tokens issues and validates the HS256 bearer tokens used by the JSON API.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) sign(u *models.User, typ string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Issue returns an access token valid for AccessTokenTTL.
func (t *Tokens) Issue(u *models.User) (string, error) {
	return t.sign(u, tokenAccess, AccessTokenTTL)
}

// IssueRefresh returns a refresh token valid for RefreshTokenTTL.
func (t *Tokens) IssueRefresh(u *models.User) (string, error) {
	return t.sign(u, tokenRefresh, RefreshTokenTTL)
}

func (t *Tokens) parse(tokenString, typ string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, &Error{Kind: KindAuthentication, Message: MsgInvalidToken, Err: err}
	}
	if !token.Valid || claims.Type != typ || claims.UserID == "" {
		return nil, Authentication(MsgInvalidToken)
	}
	return &claims, nil
}

func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	return t.parse(tokenString, tokenAccess)
}

func (t *Tokens) ValidateRefresh(tokenString string) (*Claims, error) {
	return t.parse(tokenString, tokenRefresh)
}
