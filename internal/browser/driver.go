// Package browser defines the capability the relay needs from a scripted
// browser and a Chrome implementation of it. Business logic never touches the
// automation backend directly; it programs against SessionDriver so the
// sign-in state machine stays testable without a browser.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by WaitVisible when the element does not appear
// within the deadline. For some callers this is a branch point, not a failure.
var ErrWaitTimeout = errors.New("element did not appear before timeout")

// SessionDriver is one scripted browser session. A driver is single-use: it
// backs exactly one automation run and must be closed by its owner regardless
// of outcome. Implementations are not safe for concurrent use.
type SessionDriver interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	// WaitVisible blocks until the selector is visible or the timeout
	// elapses, returning ErrWaitTimeout in the latter case.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// Cookies returns the session's cookie set as "name=value" strings.
	Cookies(ctx context.Context) ([]string, error)
	Close() error
}
