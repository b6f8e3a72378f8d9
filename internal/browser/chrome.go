package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// ChromeDriver drives one headless Chrome tab through chromedp.
type ChromeDriver struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

var _ SessionDriver = (*ChromeDriver)(nil)

// NewChromeDriver launches a Chrome instance with its own user data dir and
// opens a single tab. The caller owns the driver and must Close it.
func NewChromeDriver(headless bool) (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser now so launch failures surface here, not on the
	// first navigation.
	if err := chromedp.Run(tab); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	return &ChromeDriver{tab: tab, cancelTab: cancelTab, cancelAlloc: cancelAlloc}, nil
}

// run executes actions on the tab, bounded by the caller's context deadline
// when one is set. The tab context itself survives the call.
func (d *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	tab := d.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		tab, cancel = context.WithDeadline(tab, deadline)
		defer cancel()
	}
	return chromedp.Run(tab, actions...)
}

func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

func (d *ChromeDriver) Fill(ctx context.Context, selector, value string) error {
	return d.run(ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (d *ChromeDriver) Click(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (d *ChromeDriver) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(d.tab, timeout)
	defer cancel()

	err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrWaitTimeout, selector, timeout)
	}
	return err
}

func (d *ChromeDriver) Cookies(ctx context.Context) ([]string, error) {
	var pairs []string
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			pairs = append(pairs, c.Name+"="+c.Value)
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Close tears down the tab and the browser process.
func (d *ChromeDriver) Close() error {
	d.cancelTab()
	d.cancelAlloc()
	return nil
}
