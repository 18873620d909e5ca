package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret)
	if err != nil {
		t.Fatalf("NewJWTService error: %v", err)
	}
	return svc
}

// signTestToken builds a token with explicit claims so expiry edge cases
// don't depend on sleeping in tests.
func signTestToken(t *testing.T, secret []byte, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTService([]byte("too-short")); err == nil {
		t.Fatal("expected error for secret shorter than 32 bytes")
	}
}

func TestCreateAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("user ID mismatch: got %q want %q", claims.UserID, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Fatal("expiry must be in the future")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	now := time.Now()

	token := signTestToken(t, testSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})

	_, err := svc.VerifyToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	otherSecret := []byte("ffffffffffffffffffffffffffffffff")
	token := signTestToken(t, otherSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	// A token without exp never expires; the verifier must refuse it
	token := signTestToken(t, testSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})

	_, err := svc.VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without exp, got %v", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	token := signTestToken(t, testSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without subject, got %v", err)
	}
}

func TestVerify_MalformedToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := svc.VerifyToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	// alg=none must never validate
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.VerifyToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
