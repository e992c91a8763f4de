package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"restoran-backoffice/internal/session"
)

type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	// Sealed is the upstream API token, encrypted with a key derived from the JWT secret.
	Sealed string `json:"upt,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session token for the signed-in store.
func GenerateToken(secret string, ttl time.Duration, userID, email, upstreamToken string) (string, *session.Session, error) {
	now := time.Now()
	sess := &session.Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		Email:         email,
		UpstreamToken: upstreamToken,
		ExpiresAt:     now.Add(ttl).Truncate(time.Second),
	}

	sealed := ""
	if upstreamToken != "" {
		var err error
		if sealed, err = seal(secret, upstreamToken); err != nil {
			return "", nil, err
		}
	}

	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		Sealed: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("token imzalanamadı: %w", err)
	}
	return signed, sess, nil
}

var errInvalidToken = errors.New("geçersiz veya süresi dolmuş token")

// ParseToken verifies tokenStr and returns the session it carries.
func ParseToken(secret, tokenStr string) (*session.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("geçersiz imzalama yöntemi")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.ID == "" || claims.UserID == "" {
		return nil, errInvalidToken
	}

	upstream := ""
	if claims.Sealed != "" {
		if upstream, err = open(secret, claims.Sealed); err != nil {
			return nil, errInvalidToken
		}
	}

	return &session.Session{
		ID:            claims.ID,
		UserID:        claims.UserID,
		Email:         claims.Email,
		UpstreamToken: upstream,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}
