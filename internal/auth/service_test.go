// internal/auth/service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *User) error {
	f.nextID++
	user.ID = fmt.Sprintf("user%d", f.nextID)
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, userID string) (*User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func newTestService() Service {
	return NewService(newFakeRepo(), "test-secret", time.Hour, 4)
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "Family@Example.com", "correct-horse", RoleHost, "hostA")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "family@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if token == "" {
		t.Error("missing access token")
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if _, _, err := svc.Signup(ctx, "family@example.com", "other-pass", RoleHost, "hostB"); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("login with the right password succeeds", func(t *testing.T) {
		loggedIn, token, err := svc.Login(ctx, "family@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if loggedIn.ID != user.ID || token == "" {
			t.Errorf("user = %+v token = %q", loggedIn, token)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, wrongPass := svc.Login(ctx, "family@example.com", "wrong")
		_, _, unknown := svc.Login(ctx, "nobody@example.com", "whatever")
		if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
			t.Errorf("errs = %v, %v; want ErrInvalidCredentials for both", wrongPass, unknown)
		}
	})
}

func TestParseAccessToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, "nanny@example.com", "password123", RoleNanny, "nannyA")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	principal, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if principal.Role != RoleNanny || principal.ProfileID != "nannyA" {
		t.Errorf("principal = %+v", principal)
	}

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := svc.ParseAccessToken("garbage"); !errors.Is(err, ErrInvalidAccessToken) {
			t.Errorf("err = %v, want ErrInvalidAccessToken", err)
		}
	})

	t.Run("a token signed with another secret is rejected", func(t *testing.T) {
		other := NewService(newFakeRepo(), "other-secret", time.Hour, 4)
		_, foreign, err := other.Signup(ctx, "x@example.com", "password123", RoleHost, "hostX")
		if err != nil {
			t.Fatalf("Signup: %v", err)
		}
		if _, err := svc.ParseAccessToken(foreign); !errors.Is(err, ErrInvalidAccessToken) {
			t.Errorf("err = %v, want ErrInvalidAccessToken", err)
		}
	})

	t.Run("an expired token is rejected", func(t *testing.T) {
		expired := NewService(newFakeRepo(), "test-secret", -time.Minute, 4)
		_, token, err := expired.Signup(ctx, "y@example.com", "password123", RoleHost, "hostY")
		if err != nil {
			t.Fatalf("Signup: %v", err)
		}
		if _, err := expired.ParseAccessToken(token); !errors.Is(err, ErrInvalidAccessToken) {
			t.Errorf("err = %v, want ErrInvalidAccessToken", err)
		}
	})
}
