package services

import (
	"testing"

	"walleto/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice@example.com", "password123", "Alice", "Smith")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Error("expected non-zero user ID")
		}
		if user.Password == "password123" {
			t.Error("password must be stored hashed")
		}
	})

	t.Run("email_lowercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Bob@Example.COM", "password123", "Bob", "Jones")
		testutil.AssertNoError(t, err)
		if user.Email != "bob@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("carol@example.com", "password123", "Carol", "White")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("CAROL@example.com", "otherpass", "Carol", "White")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("dave@example.com", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("erin@example.com", "password123", "Erin", "Brown")
	testutil.AssertNoError(t, err)

	t.Run("by_email", func(t *testing.T) {
		got, err := svc.GetUserByEmail("Erin@Example.com")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("by_id", func(t *testing.T) {
		got, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if got.Email != "erin@example.com" {
			t.Errorf("unexpected email %s", got.Email)
		}
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := svc.GetUserByID(99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("frank@example.com", "correct-horse", "Frank", "Green")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "correct-horse") {
		t.Error("expected the right password to verify")
	}
	if svc.VerifyPassword(user, "battery-staple") {
		t.Error("expected the wrong password to fail")
	}
}
