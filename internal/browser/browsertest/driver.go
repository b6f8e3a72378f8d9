// Package browsertest provides a scriptable in-memory SessionDriver so the
// sign-in engine and the task pipeline can be tested without a browser.
package browsertest

import (
	"context"
	"fmt"
	"time"

	"github.com/pysugar/gift-relay/internal/browser"
)

// Call records one driver invocation.
type Call struct {
	Op       string // navigate, fill, click, wait, cookies, close
	Selector string // selector, or URL for navigate
	Value    string // typed text for fill
}

// FakeDriver implements browser.SessionDriver against scripted page state.
// Every selector is considered visible unless listed in Hidden, and every
// operation succeeds unless Errs maps its selector (or URL) to an error.
type FakeDriver struct {
	Hidden    map[string]bool
	Errs      map[string]error
	CookieSet []string

	Calls  []Call
	Closed bool
}

var _ browser.SessionDriver = (*FakeDriver)(nil)

// New returns a driver whose happy path succeeds everywhere.
func New() *FakeDriver {
	return &FakeDriver{
		Hidden:    map[string]bool{},
		Errs:      map[string]error{},
		CookieSet: []string{"sessionid=fake-session", "steamLoginSecure=fake-token"},
	}
}

func (d *FakeDriver) record(op, selector, value string) {
	d.Calls = append(d.Calls, Call{Op: op, Selector: selector, Value: value})
}

func (d *FakeDriver) Navigate(ctx context.Context, url string) error {
	d.record("navigate", url, "")
	return d.Errs[url]
}

func (d *FakeDriver) Fill(ctx context.Context, selector, value string) error {
	d.record("fill", selector, value)
	return d.Errs[selector]
}

func (d *FakeDriver) Click(ctx context.Context, selector string) error {
	d.record("click", selector, "")
	return d.Errs[selector]
}

func (d *FakeDriver) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	d.record("wait", selector, "")
	if err := d.Errs[selector]; err != nil {
		return err
	}
	if d.Hidden[selector] {
		return fmt.Errorf("%w: %s", browser.ErrWaitTimeout, selector)
	}
	return nil
}

func (d *FakeDriver) Cookies(ctx context.Context) ([]string, error) {
	d.record("cookies", "", "")
	return d.CookieSet, nil
}

func (d *FakeDriver) Close() error {
	d.record("close", "", "")
	d.Closed = true
	return nil
}

// FilledValue returns the last value typed into the selector, if any.
func (d *FakeDriver) FilledValue(selector string) (string, bool) {
	for i := len(d.Calls) - 1; i >= 0; i-- {
		if d.Calls[i].Op == "fill" && d.Calls[i].Selector == selector {
			return d.Calls[i].Value, true
		}
	}
	return "", false
}

// Visited reports whether Navigate was called with the URL.
func (d *FakeDriver) Visited(url string) bool {
	for _, c := range d.Calls {
		if c.Op == "navigate" && c.Selector == url {
			return true
		}
	}
	return false
}
