// Package pipeline orchestrates one end-to-end task run: pick an eligible
// account, authenticate, befriend the target profile, send the gift. Steps run
// strictly in order, the first failure aborts the rest, and every completed
// step leaves exactly one audit row. Failures of any kind are converted into a
// single system-level audit row and an error result; nothing propagates to the
// caller as a panic or unhandled error.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pysugar/gift-relay/internal/auth"
	"github.com/pysugar/gift-relay/internal/browser"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/db/models"
	"github.com/pysugar/gift-relay/internal/util"
	"github.com/pysugar/gift-relay/internal/vault"
)

var (
	// ErrNoEligibleAccount means no authenticated account exists for the
	// requested region.
	ErrNoEligibleAccount = errors.New("no authenticated account for region")
	// ErrGiftNotFound means the requested gift id has no record.
	ErrGiftNotFound = errors.New("gift not found")
	// ErrActionTimeout means a confirmation indicator never appeared while
	// driving a follow-up action.
	ErrActionTimeout = errors.New("action confirmation timed out")
)

// Profile and purchase page selectors and waits.
const (
	addFriendButton     = "#btn_add_friend"
	inviteSentIndicator = ".profile_invite_sent"

	purchaseGiftButton = "#btn_purchase_as_gift"
	friendPicker       = ".friend_picker"
	friendPickerEntry  = ".friend_picker .friend_block_holder"
	confirmGiftButton  = "#btn_confirm_gift_purchase"
	giftSentIndicator  = ".gift_sent_confirmation"

	actionTimeout = 10 * time.Second
)

// TaskRequest is the webhook payload that triggers a run.
type TaskRequest struct {
	ProfileLink string `json:"profileLink"`
	Region      string `json:"region"`
	GiftID      string `json:"giftId"`
}

// TaskResult is the caller-visible outcome. LogID references the authenticate
// audit row of a successful run.
type TaskResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	LogID   string `json:"logId,omitempty"`
}

// Pipeline wires the stores and the browser factory together. Each Run
// acquires its own SessionDriver, so independent runs may execute
// concurrently.
type Pipeline struct {
	database  *gorm.DB
	vault     *vault.Vault
	newDriver func() (browser.SessionDriver, error)
	now       func() time.Time
}

// New builds a Pipeline. A nil clock means time.Now.
func New(database *gorm.DB, v *vault.Vault, newDriver func() (browser.SessionDriver, error), now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{database: database, vault: v, newDriver: newDriver, now: now}
}

// Run executes the task chain. Every failure path writes one system-level
// audit row and yields an error result; the successful path yields the id of
// the authenticate row.
func (p *Pipeline) Run(ctx context.Context, req TaskRequest) TaskResult {
	result, err := p.run(ctx, req)
	if err != nil {
		p.recordSystemError(err)
		return TaskResult{Status: models.StatusError, Message: err.Error()}
	}
	return result
}

func (p *Pipeline) run(ctx context.Context, req TaskRequest) (TaskResult, error) {
	account, err := db.FindEligibleAccount(p.database, req.Region)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return TaskResult{}, fmt.Errorf("%w %q", ErrNoEligibleAccount, req.Region)
		}
		return TaskResult{}, err
	}

	driver, err := p.newDriver()
	if err != nil {
		return TaskResult{}, fmt.Errorf("acquire browser: %w", err)
	}
	defer driver.Close()

	engine := auth.NewEngine(driver, p.vault, p.now)
	res := engine.Authenticate(ctx, account)
	if !res.Success {
		return TaskResult{}, fmt.Errorf("authenticate %s: %w", account.Login, res.Err)
	}
	if err := p.vault.MarkAuthenticated(account.ID, p.now()); err != nil {
		return TaskResult{}, err
	}
	p.storeSession(account.ID, res.Cookies)

	authLogID, err := p.record(account.ID, models.ActionAuthenticate, "authenticated as "+account.Login)
	if err != nil {
		return TaskResult{}, err
	}

	if err := p.addFriend(ctx, driver, req.ProfileLink); err != nil {
		return TaskResult{}, fmt.Errorf("add friend %s: %w", req.ProfileLink, err)
	}
	if _, err := p.record(account.ID, models.ActionAddFriend, "added friend: "+req.ProfileLink); err != nil {
		return TaskResult{}, err
	}

	gift, err := db.GetGift(p.database, req.GiftID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return TaskResult{}, fmt.Errorf("%w: %s", ErrGiftNotFound, req.GiftID)
		}
		return TaskResult{}, err
	}
	if err := p.sendGift(ctx, driver, gift); err != nil {
		return TaskResult{}, fmt.Errorf("send gift %q: %w", gift.Title, err)
	}
	if _, err := p.record(account.ID, models.ActionSendGift,
		fmt.Sprintf("sent gift %q to %s", gift.Title, req.ProfileLink)); err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		Status:  models.StatusSuccess,
		Message: "task completed successfully",
		LogID:   authLogID,
	}, nil
}

func (p *Pipeline) addFriend(ctx context.Context, driver browser.SessionDriver, profileLink string) error {
	if err := driver.Navigate(ctx, profileLink); err != nil {
		return err
	}
	if err := driver.Click(ctx, addFriendButton); err != nil {
		return err
	}
	if err := driver.WaitVisible(ctx, inviteSentIndicator, actionTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			return fmt.Errorf("%w: friend invite", ErrActionTimeout)
		}
		return err
	}
	return nil
}

func (p *Pipeline) sendGift(ctx context.Context, driver browser.SessionDriver, gift *models.Gift) error {
	if err := driver.Navigate(ctx, gift.Link); err != nil {
		return err
	}
	if err := driver.Click(ctx, purchaseGiftButton); err != nil {
		return err
	}
	if err := driver.WaitVisible(ctx, friendPicker, actionTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			return fmt.Errorf("%w: friend picker", ErrActionTimeout)
		}
		return err
	}
	if err := driver.Click(ctx, friendPickerEntry); err != nil {
		return err
	}
	if err := driver.Click(ctx, confirmGiftButton); err != nil {
		return err
	}
	if err := driver.WaitVisible(ctx, giftSentIndicator, actionTimeout); err != nil {
		if errors.Is(err, browser.ErrWaitTimeout) {
			return fmt.Errorf("%w: gift confirmation", ErrActionTimeout)
		}
		return err
	}
	return nil
}

// record appends one success row and returns its id.
func (p *Pipeline) record(accountID, action, details string) (string, error) {
	entry := &models.AuditLog{
		ID:        uuid.New().String(),
		Timestamp: p.now(),
		AccountID: accountID,
		Action:    action,
		Status:    models.StatusSuccess,
		Details:   util.TruncateDetails(details, util.DefaultDetailsMaxLen),
	}
	if err := db.CreateAuditLog(p.database, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// recordSystemError writes the single run-level error row. A failure to write
// it is swallowed: the caller still gets the error result either way.
func (p *Pipeline) recordSystemError(runErr error) {
	_ = db.CreateAuditLog(p.database, &models.AuditLog{
		ID:        uuid.New().String(),
		Timestamp: p.now(),
		AccountID: models.SystemAccountID,
		Action:    models.ActionAuthenticate,
		Status:    models.StatusError,
		Details:   util.TruncateDetails(runErr.Error(), util.DefaultDetailsMaxLen),
	})
}

// storeSession persists the captured cookie set, replacing any previous
// session for the account. Session storage is best-effort; the run does not
// fail because of it.
func (p *Pipeline) storeSession(accountID string, cookies []string) {
	data, err := json.Marshal(cookies)
	if err != nil {
		return
	}
	_ = db.ReplaceSession(p.database, &models.Session{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Cookies:    string(data),
		CapturedAt: p.now(),
	})
}
