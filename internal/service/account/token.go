package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	SessionID string
	UserID    string
	Role      domain.Role
}

// TokenIssuer signs the HS256 tokens handed to HTTP clients. Tokens carry no
// expiry of their own; the session registry decides liveness.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (t *TokenIssuer) Issue(sessionID string, user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     sessionID,
		"sub":     user.ID,
		"user_id": user.ID,
		"role":    string(user.Role),
		"iat":     t.now().Unix(),
	})
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, ErrInvalidToken)
	}
	sid, _ := claims["sid"].(string)
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if sid == "" || userID == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, ErrInvalidToken)
	}
	return &Claims{SessionID: sid, UserID: userID, Role: domain.Role(role)}, nil
}
