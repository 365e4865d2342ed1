package jobsource

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// renderSettle is how long client-side scripts get after the body is ready.
const renderSettle = 3 * time.Second

// RenderFunc returns the HTML of a page after it has been rendered.
type RenderFunc func(ctx context.Context, pageURL string) (string, error)

// RenderWithChrome renders a page in headless Chrome. Chrome or Chromium
// must be installed.
func RenderWithChrome(timeout time.Duration) RenderFunc {
	return func(ctx context.Context, pageURL string) (string, error) {
		allocCtx, cancel := chromedp.NewExecAllocator(ctx,
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)...,
		)
		defer cancel()

		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
		defer cancel()

		var page string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body"),
			chromedp.Sleep(renderSettle),
			chromedp.OuterHTML("html", &page),
		)
		if err != nil {
			return "", fmt.Errorf("browser rendering failed: %w", err)
		}
		return page, nil
	}
}
