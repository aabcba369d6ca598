package tokens

import (
	"testing"
	"time"
)

func TestProceedPassTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", 7*24*time.Hour)

	token, err := issuer.GenerateProceedPassToken("recMatch1", RoleNanny)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := issuer.ValidateTokenOfType(token, TypeProceedPass)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.MatchID != "recMatch1" {
		t.Errorf("got match ID %q, want recMatch1", claims.MatchID)
	}
	if claims.Role != RoleNanny {
		t.Errorf("got role %q, want nanny", claims.Role)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateChatToken("recConv1", RoleHost)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := issuer.ValidateTokenOfType(token, TypeInterview); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.GenerateInterviewToken("recMatch1", "recNanny1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := issuer.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	token, err := issuer.GenerateCVReviewToken("recHost1", "recShortlist1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	if _, err := issuer.GenerateProceedPassToken("recMatch1", "matchmaker"); err == nil {
		t.Error("expected error for unknown role")
	}
}
