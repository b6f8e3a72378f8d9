// Package auth implements the sign-in state machine. It drives a browser
// session through credential submission, handles the conditional second-factor
// prompt with a generated guard code, and captures the session cookies on
// success. The engine never retries and never authenticates two accounts on
// one driver; retry policy and driver lifetime belong to the caller.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pysugar/gift-relay/internal/browser"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/guard"
	"github.com/pysugar/gift-relay/internal/vault"
)

// State identifies where in the sign-in flow the engine is or was when it
// stopped.
type State string

const (
	StateStart                State = "start"
	StateCredentialsSubmitted State = "credentials_submitted"
	StateSecondFactorPending  State = "second_factor_pending"
	StateAuthenticated        State = "authenticated"
	StateFailed               State = "failed"
)

var (
	// ErrGuardSecretMissing means the sign-in page asked for a code but no
	// secret is provisioned for the account. Fatal, never retried.
	ErrGuardSecretMissing = errors.New("second factor required but no secret is provisioned")
	// ErrSignInTimeout means the signed-in indicator never appeared.
	ErrSignInTimeout = errors.New("sign-in confirmation timed out")
)

// Login surface selectors and waits.
const (
	loginURL = "https://store.steampowered.com/login"

	usernameInput     = "#input_username"
	passwordInput     = "#input_password"
	signInButton      = "#login_btn_signin > button"
	twoFactorInput    = "#twofactorcode_entry"
	twoFactorConfirm  = "#login_twofactorauth_buttonset_entercode > div.auth_button.leftbtn > div.auth_button_h5"
	signedInIndicator = ".profile_small_header_name"

	// The two-factor prompt either renders quickly or not at all; its
	// absence after this window means the account has no second factor.
	twoFactorProbeTimeout = 5 * time.Second
	signInWaitTimeout     = 10 * time.Second
)

// Result is the outcome of one Authenticate call. On failure Cookies is empty
// and Err carries the reason; nothing is ever thrown past the engine.
type Result struct {
	Success bool
	Cookies []string
	State   State
	Err     error
}

// Engine runs the sign-in flow on a single-use SessionDriver.
type Engine struct {
	driver browser.SessionDriver
	vault  *vault.Vault
	now    func() time.Time
}

// NewEngine builds an engine. The clock is injected so guard codes are
// deterministic under test; nil means time.Now.
func NewEngine(driver browser.SessionDriver, v *vault.Vault, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{driver: driver, vault: v, now: now}
}

// Authenticate signs the account in and returns the captured cookie set. The
// driver is left open for follow-up actions; closing it is the caller's job.
func (e *Engine) Authenticate(ctx context.Context, account *models.Account) Result {
	state := StateStart
	fail := func(err error) Result {
		return Result{State: StateFailed, Err: fmt.Errorf("%s: %w", state, err)}
	}

	password, err := e.vault.DecryptPassword(account.Password)
	if err != nil {
		return fail(err)
	}

	if err := e.driver.Navigate(ctx, loginURL); err != nil {
		return fail(err)
	}
	if err := e.driver.Fill(ctx, usernameInput, account.Login); err != nil {
		return fail(err)
	}
	if err := e.driver.Fill(ctx, passwordInput, password); err != nil {
		return fail(err)
	}
	if err := e.driver.Click(ctx, signInButton); err != nil {
		return fail(err)
	}
	state = StateCredentialsSubmitted

	err = e.driver.WaitVisible(ctx, twoFactorInput, twoFactorProbeTimeout)
	switch {
	case err == nil:
		state = StateSecondFactorPending
		if err := e.submitGuardCode(ctx, account.ID); err != nil {
			return fail(err)
		}
	case errors.Is(err, browser.ErrWaitTimeout):
		// No prompt: the account signs in on credentials alone. The
		// secret store is deliberately not consulted on this path.
	default:
		return fail(err)
	}

	if err := e.driver.WaitVisible(ctx, signedInIndicator, signInWaitTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			return fail(ErrSignInTimeout)
		}
		return fail(err)
	}
	state = StateAuthenticated

	cookies, err := e.driver.Cookies(ctx)
	if err != nil {
		return fail(err)
	}
	return Result{Success: true, Cookies: cookies, State: StateAuthenticated}
}

func (e *Engine) submitGuardCode(ctx context.Context, accountID string) error {
	secret, err := e.vault.GetSecondFactor(accountID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrGuardSecretMissing
		}
		return err
	}

	raw, err := guard.DecodeSecret(secret.SharedSecret)
	if err != nil {
		return err
	}
	code, _ := guard.GenerateCode(raw, e.now())

	if err := e.driver.Fill(ctx, twoFactorInput, code); err != nil {
		return err
	}
	return e.driver.Click(ctx, twoFactorConfirm)
}
