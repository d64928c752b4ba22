// Package usertoken verifies the bearer tokens the identity provider issues
// to users (HS256 with a shared secret) and signs equivalent tokens for
// local development and tests.
package usertoken

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	defaultIssuer   = "grimoire-auth"
	defaultAudience = "authenticated"
	defaultLeeway   = 30 * time.Second
	defaultTTL      = time.Hour
)

// ErrSubjectMissing is returned for a valid token without a subject.
var ErrSubjectMissing = errors.New("token subject missing")

// Config configures token verification and signing.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

func (cfg Config) normalized() (Config, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return cfg, errors.New("token secret is required")
	}
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	cfg.Audience = strings.TrimSpace(cfg.Audience)
	if cfg.Audience == "" {
		cfg.Audience = defaultAudience
	}
	if cfg.Leeway <= 0 {
		cfg.Leeway = defaultLeeway
	}
	return cfg, nil
}

// Verifier validates user access tokens and extracts the subject.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a token verifier.
func NewVerifier(cfg Config) (*Verifier, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	return &Verifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithIssuedAt(),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(cfg.Leeway),
		),
	}, nil
}

// VerifySubject validates the token and returns the subject user ID.
func (v *Verifier) VerifySubject(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrSubjectMissing
	}
	return subject, nil
}

// Signer issues tokens the Verifier accepts.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewSigner creates a signer sharing the verifier's configuration.
func NewSigner(cfg Config) (*Signer, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	return &Signer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Sign returns a signed token for subject valid for ttl (one hour if zero).
func (s *Signer) Sign(subject string, ttl time.Duration) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrSubjectMissing
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(-time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(s.secret)
}
