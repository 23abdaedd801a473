// Package browser provides a driven.Navigator that opens targets in the
// system's default browser.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure Navigator implements the interface.
var _ driven.Navigator = (*Navigator)(nil)

// Navigator resolves in-app routes against a base URL and opens the result.
type Navigator struct {
	base *url.URL
	open func(string) error
}

// New creates a navigator. Routes such as "/foods/apple" are resolved
// against baseURL, typically the address of `nutri serve`.
func New(baseURL string) (*Navigator, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w: %w", domain.ErrInvalidInput, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https: %w", domain.ErrInvalidInput)
	}
	return &Navigator{base: base, open: openURL}, nil
}

// WithOpener replaces the command used to open URLs.
func (n *Navigator) WithOpener(open func(string) error) *Navigator {
	n.open = open
	return n
}

// Resolve returns the absolute URL for target.
func (n *Navigator) Resolve(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", domain.ErrNoTarget
	}
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing target: %w: %w", domain.ErrInvalidInput, err)
	}
	resolved := n.base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("refusing to open %q: %w", resolved.Scheme, domain.ErrInvalidInput)
	}
	return resolved.String(), nil
}

// NavigateTo opens target in the browser.
func (n *Navigator) NavigateTo(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := n.Resolve(target)
	if err != nil {
		return err
	}
	logger.Debug("opening %s", u)
	return n.open(u)
}

// openURL opens a URL in the default application.
func openURL(u string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", u)
	case osLinux:
		cmd = exec.Command("xdg-open", u)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
