package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
)

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-32-bytes-should-be-long-enough"

	u := &models.User{ID: "user-123", Email: "test@example.com", Role: models.RoleAdmin}
	tokenStr, err := GenerateAccessToken(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(cfg.JWT.Secret, tokenStr)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims["sub"] != u.ID {
		t.Fatalf("unexpected sub claim: got=%v want=%v", claims["sub"], u.ID)
	}
	if claims["role"] != models.RoleAdmin {
		t.Fatalf("unexpected role claim: got=%v", claims["role"])
	}
	if claims["email"] != u.Email {
		t.Fatalf("unexpected email claim: got=%v", claims["email"])
	}
}

func TestGenerateAccessToken_Expiry(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret-32-bytes-longgggg"
	u := &models.User{ID: "u2", Email: "x@x", Role: models.RoleUser}
	tokenStr, err := GenerateAccessToken(cfg, u, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken(cfg.JWT.Secret, tokenStr); err == nil {
		t.Fatalf("expected token parse to fail after expiry")
	}
}

func TestParseAccessToken_WrongSecretFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secret-one-32-bytes-xxxxxxxxxxxxxxxx"
	u := &models.User{ID: "u3", Email: "bob@example.com", Role: models.RoleUser}
	tokenStr, err := GenerateAccessToken(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken("different-secret-xxxxxxxxxxxxxxxx", tokenStr); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	if _, err := ParseAccessToken("x", "not.a.jwt"); err == nil {
		t.Fatalf("expected parse to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestParseAccessToken_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := ParseAccessToken("x", tok); err == nil {
		t.Fatalf("expected parse to reject alg=none token")
	}
}

// Tampering with payload must fail signature verification
func TestParseAccessToken_TamperedPayload(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "tamper-test-secret-32-bytes-xxxxxxx"
	u := &models.User{ID: "user-t", Email: "t@example.com", Role: models.RoleUser}
	tokenStr, err := GenerateAccessToken(cfg, u, 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payloadStr := strings.Replace(string(payloadBytes), `"role":"user"`, `"role":"admin"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	tampered := strings.Join(parts, ".")
	if _, err := ParseAccessToken(cfg.JWT.Secret, tampered); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
