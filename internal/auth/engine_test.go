package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/browser/browsertest"
	"github.com/pysugar/gift-relay/internal/crypto"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/guard"
	"github.com/pysugar/gift-relay/internal/vault"
)

var testClock = func() time.Time { return time.Unix(1700000040, 0) }

func newEngineFixture(t *testing.T) (*vault.Vault, *gorm.DB, *models.Account) {
	t.Helper()
	database, err := db.InitDB("file:" + uuid.New().String() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	key := []byte("0123456789abcdef0123456789abcdef")
	v := vault.New(database, key)

	token, err := crypto.Encrypt(key, "hunter2")
	if err != nil {
		t.Fatalf("encrypt password: %v", err)
	}
	account := &models.Account{
		ID: uuid.New().String(), Login: "tester", Password: token,
		Region: "EU", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	if err := db.CreateAccount(database, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return v, database, account
}

func provisionSecret(t *testing.T, database *gorm.DB, accountID, sharedSecret string) {
	t.Helper()
	err := db.ReplaceTwoFactorSecret(database, &models.TwoFactorSecret{
		ID: uuid.New().String(), AccountID: accountID,
		SharedSecret: sharedSecret, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed secret: %v", err)
	}
}

func TestAuthenticate_WithoutSecondFactor(t *testing.T) {
	v, _, account := newEngineFixture(t)
	driver := browsertest.New()
	driver.Hidden[twoFactorInput] = true // prompt never appears

	engine := NewEngine(driver, v, testClock)
	res := engine.Authenticate(context.Background(), account)

	if !res.Success {
		t.Fatalf("Authenticate() failed: %v", res.Err)
	}
	if res.State != StateAuthenticated {
		t.Errorf("State = %s, want %s", res.State, StateAuthenticated)
	}
	if len(res.Cookies) == 0 {
		t.Error("expected captured cookies")
	}

	// The credentials were typed, the code input never was.
	if got, ok := driver.FilledValue(passwordInput); !ok || got != "hunter2" {
		t.Errorf("password fill = (%q, %v), want decrypted plaintext", got, ok)
	}
	if _, ok := driver.FilledValue(twoFactorInput); ok {
		t.Error("engine typed a guard code although no prompt appeared")
	}
}

func TestAuthenticate_NoPromptSkipsSecretStore(t *testing.T) {
	// The account has no secret provisioned; if the engine consulted the
	// store on the no-prompt path it would fail with a missing secret.
	v, _, account := newEngineFixture(t)
	driver := browsertest.New()
	driver.Hidden[twoFactorInput] = true

	res := NewEngine(driver, v, testClock).Authenticate(context.Background(), account)
	if !res.Success {
		t.Fatalf("Authenticate() should succeed without touching the secret store, got %v", res.Err)
	}
}

func TestAuthenticate_WithSecondFactor(t *testing.T) {
	v, database, account := newEngineFixture(t)
	provisionSecret(t, database, account.ID, "NCQV6YVBTQZVAYJS")

	driver := browsertest.New()
	engine := NewEngine(driver, v, testClock)
	res := engine.Authenticate(context.Background(), account)

	if !res.Success {
		t.Fatalf("Authenticate() failed: %v", res.Err)
	}

	secret, err := guard.DecodeSecret("NCQV6YVBTQZVAYJS")
	if err != nil {
		t.Fatalf("decode secret: %v", err)
	}
	wantCode, _ := guard.GenerateCode(secret, testClock())

	got, ok := driver.FilledValue(twoFactorInput)
	if !ok {
		t.Fatal("engine never typed a guard code")
	}
	if got != wantCode {
		t.Errorf("typed code %q, want %q for the fixed clock", got, wantCode)
	}
}

func TestAuthenticate_SecretMissing(t *testing.T) {
	v, _, account := newEngineFixture(t) // prompt appears, no secret provisioned
	driver := browsertest.New()

	res := NewEngine(driver, v, testClock).Authenticate(context.Background(), account)
	if res.Success {
		t.Fatal("Authenticate() should fail without a provisioned secret")
	}
	if !errors.Is(res.Err, ErrGuardSecretMissing) {
		t.Errorf("Err = %v, want ErrGuardSecretMissing", res.Err)
	}
	if res.State != StateFailed {
		t.Errorf("State = %s, want %s", res.State, StateFailed)
	}
	if len(res.Cookies) != 0 {
		t.Error("failed result must not carry cookies")
	}
}

func TestAuthenticate_UndecodableSecret(t *testing.T) {
	v, database, account := newEngineFixture(t)
	provisionSecret(t, database, account.ID, "!!!")

	res := NewEngine(browsertest.New(), v, testClock).Authenticate(context.Background(), account)
	if res.Success || !errors.Is(res.Err, guard.ErrInvalidSecret) {
		t.Errorf("Err = %v, want guard.ErrInvalidSecret", res.Err)
	}
}

func TestAuthenticate_SignInTimeout(t *testing.T) {
	v, _, account := newEngineFixture(t)
	driver := browsertest.New()
	driver.Hidden[twoFactorInput] = true
	driver.Hidden[signedInIndicator] = true

	res := NewEngine(driver, v, testClock).Authenticate(context.Background(), account)
	if res.Success {
		t.Fatal("Authenticate() should fail when the signed-in indicator never appears")
	}
	if !errors.Is(res.Err, ErrSignInTimeout) {
		t.Errorf("Err = %v, want ErrSignInTimeout", res.Err)
	}
}

func TestAuthenticate_DecryptionFailure(t *testing.T) {
	v, _, account := newEngineFixture(t)
	account.Password = "corrupted-token"
	driver := browsertest.New()

	res := NewEngine(driver, v, testClock).Authenticate(context.Background(), account)
	if res.Success || !errors.Is(res.Err, crypto.ErrDecryptionFailed) {
		t.Errorf("Err = %v, want crypto.ErrDecryptionFailed", res.Err)
	}
	if len(driver.Calls) != 0 {
		t.Error("engine touched the browser before credentials were available")
	}
}

func TestAuthenticate_NavigationFailure(t *testing.T) {
	v, _, account := newEngineFixture(t)
	driver := browsertest.New()
	driver.Errs[loginURL] = errors.New("net::ERR_NAME_NOT_RESOLVED")

	res := NewEngine(driver, v, testClock).Authenticate(context.Background(), account)
	if res.Success {
		t.Fatal("Authenticate() should surface navigation failures")
	}
	if res.Err == nil || res.State != StateFailed {
		t.Errorf("unexpected result: %+v", res)
	}
}
