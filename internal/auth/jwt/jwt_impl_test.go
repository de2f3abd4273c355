package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTUtil_IssueVerify(t *testing.T) {
	util := NewJWTUtil("test-secret")

	token, exp, err := util.Issue(42, time.Minute)
	if err != nil || exp.IsZero() {
		t.Fatalf("bad issue: %v", err)
	}

	claims, err := util.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	uid, err := Subject(claims)
	if err != nil || uid != 42 {
		t.Fatalf("want subject 42 got %d (%v)", uid, err)
	}
}

func TestJWTUtil_VerifyErrors(t *testing.T) {
	util := NewJWTUtil("test-secret")

	// garbage token string
	if _, err := util.Verify("bad"); err == nil {
		t.Fatal("expected error")
	}

	// token signed with a different secret
	other := NewJWTUtil("other-secret")
	tok, _, _ := other.Issue(1, time.Minute)
	if _, err := util.Verify(tok); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestJWTUtil_ExpiryBoundary(t *testing.T) {
	util := NewJWTUtil("test-secret")
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	util.now = func() time.Time { return issuedAt }
	token, _, err := util.Issue(7, ttl)
	if err != nil {
		t.Fatal(err)
	}

	util.now = func() time.Time { return issuedAt.Add(ttl - time.Second) }
	if _, err := util.Verify(token); err != nil {
		t.Fatalf("token must verify one second before expiry: %v", err)
	}

	util.now = func() time.Time { return issuedAt.Add(ttl + time.Second) }
	if _, err := util.Verify(token); err == nil {
		t.Fatal("token must fail one second after expiry")
	}
}

func TestJWTUtil_InvalidAlg(t *testing.T) {
	util := NewJWTUtil("test-secret")
	// "none" and any non-HS256 method must be rejected even with a matching key
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "1"}).SignedString([]byte("test-secret"))
	if _, err := util.Verify(token); err == nil {
		t.Fatal("expected invalid alg")
	}
}

func TestSubject_NonNumeric(t *testing.T) {
	if _, err := Subject(Claims{Subject: "abc"}); err == nil {
		t.Fatal("expected error for non-numeric subject")
	}
}
