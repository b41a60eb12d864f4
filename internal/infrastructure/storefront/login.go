package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Login opens the portal login form and posts the credentials. The portal
// answers bad credentials by re-rendering the form with a filled validation
// summary, success redirects away from the login page.
func (s *Session) Login(ctx context.Context) error {
	if err := s.get(ctx, loginPath); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}

	emailName, ok := s.doc.Find("input[id$='txtLoginUserName']").First().Attr("name")
	if !ok {
		return fmt.Errorf("login email input: %w", errElementMissing)
	}

	passwordName, ok := s.doc.Find("input[id$='txtPassword']").First().Attr("name")
	if !ok {
		return fmt.Errorf("login password input: %w", errElementMissing)
	}

	fields := url.Values{}
	fields.Set(emailName, s.email)
	fields.Set(passwordName, s.password)

	button := s.doc.Find("#LoginButton").First()
	if button.Length() == 0 {
		button = s.doc.Find("input[type='submit']").First()
	}

	if err := s.click(ctx, button, fields); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}

	if message := s.loginError(); message != "" {
		return fmt.Errorf("portal rejected login: %s", message)
	}

	logger(ctx).Info("logged in to the portal", slog.String("page", s.pageURL.Path))

	return nil
}

func (s *Session) loginError() string {
	summary := s.doc.Find("[id$='LoginValidationSummary']").First()
	if summary.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(summary.Text())
	if text == "" {
		return ""
	}

	line, _, _ := strings.Cut(text, "\n")

	return strings.TrimSpace(line)
}
