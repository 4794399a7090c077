package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoginAndVerify(t *testing.T) {
	svc := NewService(testSecret, "correct-password")

	token, err := svc.Login("correct-password")
	if err != nil {
		t.Fatalf("login with correct password: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	role, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify fresh token: %v", err)
	}
	if role != "admin" {
		t.Fatalf("expected role admin, got %q", role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(testSecret, "correct-password")

	if _, err := svc.Login("wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := NewService(testSecret, "pw")

	token, err := svc.Login("pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewService("another-secret-another-secret-xx", "pw").Login("pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := NewService(testSecret, "pw").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService(testSecret, "pw")

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Add(-48 * time.Hour).Unix(),
		"exp":  time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := svc.Verify(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	svc := NewService(testSecret, "pw")

	// alg=none style token must never validate.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"absent", "", ""},
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"wrong scheme", "Basic abc", ""},
		{"bare token", "abc.def.ghi", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
