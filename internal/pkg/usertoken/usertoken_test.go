package usertoken

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Secret: "test-secret", Issuer: "issuer-a", Audience: "aud-a"}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	_, err := NewVerifier(Config{})
	assert.Error(t, err)

	_, err = NewSigner(Config{Secret: "  "})
	assert.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)
	verifier, err := NewVerifier(testConfig())
	require.NoError(t, err)

	token, err := signer.Sign("user-a", time.Minute)
	require.NoError(t, err)

	sub, err := verifier.VerifySubject(token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", sub)
}

func TestVerifyRejects(t *testing.T) {
	verifier, err := NewVerifier(testConfig())
	require.NoError(t, err)

	sign := func(cfg Config, claims jwt.RegisteredClaims, method jwt.SigningMethod) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(cfg.Secret))
		require.NoError(t, err)
		return token
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "user-a",
			Issuer:    "issuer-a",
			Audience:  jwt.ClaimStrings{"aud-a"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}
	}

	testCases := []struct {
		name  string
		token func() string
	}{
		{
			name: "wrong secret",
			token: func() string {
				return sign(Config{Secret: "other"}, valid(), jwt.SigningMethodHS256)
			},
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := valid()
				c.Issuer = "issuer-b"
				return sign(testConfig(), c, jwt.SigningMethodHS256)
			},
		},
		{
			name: "wrong audience",
			token: func() string {
				c := valid()
				c.Audience = jwt.ClaimStrings{"aud-b"}
				return sign(testConfig(), c, jwt.SigningMethodHS256)
			},
		},
		{
			name: "expired beyond leeway",
			token: func() string {
				c := valid()
				c.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
				return sign(testConfig(), c, jwt.SigningMethodHS256)
			},
		},
		{
			name: "missing expiry",
			token: func() string {
				c := valid()
				c.ExpiresAt = nil
				return sign(testConfig(), c, jwt.SigningMethodHS256)
			},
		},
		{
			name: "other hmac algorithm",
			token: func() string {
				return sign(testConfig(), valid(), jwt.SigningMethodHS512)
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not-a-jwt" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.VerifySubject(tc.token())
			assert.Error(t, err)
		})
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	verifier, err := NewVerifier(testConfig())
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "issuer-a",
		Audience:  jwt.ClaimStrings{"aud-a"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = verifier.VerifySubject(token)
	assert.ErrorIs(t, err, ErrSubjectMissing)
}

func TestSignRequiresSubject(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	_, err = signer.Sign(" ", 0)
	assert.ErrorIs(t, err, ErrSubjectMissing)
}
