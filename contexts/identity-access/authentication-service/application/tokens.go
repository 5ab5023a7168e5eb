package application

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const refreshTokenBytes = 32

// Claims is the verified content of an access token.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenSigner issues and verifies signed access tokens.
type TokenSigner struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenSigner validates the secret and algorithm up front so a
// misconfigured subsystem fails at bring-up, not at first login.
func NewTokenSigner(secret, algorithm string, ttl time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, domainerrors.ErrMissingSecret
	}
	switch algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrUnsupportedAlgorithm, algorithm)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TokenSigner{
		secret: []byte(secret),
		method: jwt.GetSigningMethod(algorithm),
		ttl:    ttl,
	}, nil
}

// Sign issues an access token for the user, valid from now for the
// configured TTL.
func (s *TokenSigner) Sign(userID, email string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the claims.
func (s *TokenSigner) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domainerrors.ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", domainerrors.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return Claims{}, domainerrors.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", domainerrors.ErrTokenInvalid)
	}

	out := Claims{
		UserID:  claims.Subject,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// NewRefreshToken returns a 256-bit random token and its storage hash.
// The raw value goes to the client; only the hash is persisted.
func NewRefreshToken() (raw, hash string, err error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generating refresh token: %w", err)
	}
	raw = hex.EncodeToString(b)
	return raw, HashRefreshToken(raw), nil
}

// HashRefreshToken maps a raw refresh token to its storage key.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
