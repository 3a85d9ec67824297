package service

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 1800*time.Second)

	token, err := svc.Generate(42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	userID, status := svc.Verify(token)
	if status != TokenValid {
		t.Fatalf("Verify status = %v, want TokenValid", status)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestTokenExpired(t *testing.T) {
	// 负有效期签出的令牌立即过期
	svc := NewTokenService("test-secret", -time.Second)

	token, err := svc.Generate(7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, status := svc.Verify(token); status != TokenExpired {
		t.Errorf("Verify status = %v, want TokenExpired", status)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", 1800*time.Second)
	other := NewTokenService("another-secret", 1800*time.Second)

	token, err := svc.Generate(7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, status := other.Verify(token); status != TokenMalformed {
		t.Errorf("Verify status = %v, want TokenMalformed", status)
	}
}

func TestTokenMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", 1800*time.Second)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, status := svc.Verify(token); status != TokenMalformed {
			t.Errorf("Verify(%q) status = %v, want TokenMalformed", token, status)
		}
	}
}

func TestTokenTampered(t *testing.T) {
	svc := NewTokenService("test-secret", 1800*time.Second)

	token, err := svc.Generate(7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// 改动签名部分
	tampered := token[:len(token)-2] + "xx"
	if _, status := svc.Verify(tampered); status != TokenMalformed {
		t.Errorf("Verify status = %v, want TokenMalformed", status)
	}
}
