package auth

import (
	"fmt"
	"net/url"
	"os"

	"github.com/cli/browser"
)

func init() {
	// Launcher chatter belongs with the logs, not on stdout.
	browser.Stdout = os.Stderr
}

// URLOpener presents the consent URL to the user.
type URLOpener func(url string) error

// OpenBrowser opens an http(s) URL in the user's default browser.
func OpenBrowser(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("auth: invalid consent URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("auth: refusing to open %q URL", u.Scheme)
	}
	return browser.OpenURL(u.String())
}
