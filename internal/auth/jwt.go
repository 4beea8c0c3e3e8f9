package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"supply-service/internal/rbac"
)

var ErrInvalidSession = errors.New("invalid session")

// SessionClaims carry the user record the dashboard authenticated as
type SessionClaims struct {
	UserID      string             `json:"uid"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	Permissions rbac.PermissionMap `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Session is a verified session, passed explicitly to authorization checks
type Session struct {
	ID        string     `json:"id"`
	User      *rbac.User `json:"user"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type SessionService struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewSessionService(secret string, expiry time.Duration, issuer string) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a session token for user. The authenticating backend calls
// this after a successful login.
func (s *SessionService) Issue(user *rbac.User) (string, *Session, error) {
	if user == nil {
		return "", nil, errors.New(msgNilUser)
	}
	if user.Username == "" {
		return "", nil, errors.New(msgMissingUsername)
	}

	now := s.now()
	claims := SessionClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: user.Permissions.Clone(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, claims.session(), nil
}

// Verify checks signature, algorithm, issuer and lifetime
func (s *SessionService) Verify(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: "+msgTokenParseFailed, ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSession, msgInvalidTokenClaims)
	}

	return claims.session(), nil
}

func (c *SessionClaims) session() *Session {
	s := &Session{
		ID: c.ID,
		User: &rbac.User{
			ID:          c.UserID,
			Username:    c.Username,
			Role:        c.Role,
			Permissions: c.Permissions,
		},
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
