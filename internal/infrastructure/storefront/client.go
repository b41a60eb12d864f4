package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myselfshravan/SponsorCatcher/internal/config"
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
	"github.com/myselfshravan/SponsorCatcher/pkg/httpx"
	"github.com/myselfshravan/SponsorCatcher/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	loginPath   = "/account/login.aspx"
	sponsorPath = "/sponsorships/become-a-sponsor"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	logBodyMaxLen = 2048
)

var (
	errNoPage         = errors.New("no page loaded")
	errElementMissing = errors.New("element not found on page")
)

// Session drives the members portal over plain HTTP. The portal is a
// postback site: every control posts the full form state back to the server
// and answers with a whole new page, so the session keeps the last parsed
// document and replays its fields on each action.
//
// Not safe for concurrent use, one goroutine owns a session.
type Session struct {
	baseURL  *url.URL
	client   *http.Client
	email    string
	password string

	doc     *goquery.Document
	pageURL *url.URL
	pending url.Values
}

// NewSession builds a portal session with its own cookie jar. Nothing is
// fetched until Login.
func NewSession(cfg config.Storefront) (*Session, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New: %w", err)
	}

	var transport http.RoundTripper = httpx.NewDefaultHeadersRoundTripper(
		http.DefaultTransport,
		portalHeaders(),
	)

	if cfg.LogBodies {
		transport = httpx.NewLoggingRoundTripper(
			transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logBodyMaxLen),
		)
	}

	return &Session{
		baseURL:  baseURL,
		email:    cfg.Email,
		password: cfg.Password,
		client: &http.Client{
			Jar:       jar,
			Timeout:   cfg.HTTPTimeout,
			Transport: transport,
		},
	}, nil
}

func portalHeaders() http.Header {
	return http.Header{
		"User-Agent":      []string{userAgent},
		"Accept":          []string{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
		"Accept-Language": []string{"en-US,en;q=0.9"},
	}
}

// get fetches a page and makes it the current document.
func (s *Session) get(ctx context.Context, ref string) error {
	target, err := s.resolve(ref)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	return s.load(req)
}

// postBack replays the current form with the given event target, the way
// the portal's __doPostBack script does it in a browser. Staged payment
// fields and the extra fields override the snapshot.
func (s *Session) postBack(ctx context.Context, eventTarget, eventArgument string, extra url.Values) error {
	if s.doc == nil {
		return errNoPage
	}

	form := s.formValues()
	form.Set("__EVENTTARGET", eventTarget)
	form.Set("__EVENTARGUMENT", eventArgument)

	for name, values := range s.pending {
		form[name] = values
	}

	s.pending = nil

	for name, values := range extra {
		form[name] = values
	}

	target, err := s.resolve(s.formAction())
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		target.String(),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return s.load(req)
}

// click submits the form as if the element was clicked: postback links go
// through __EVENTTARGET, plain links are followed, submit inputs post their
// own name.
func (s *Session) click(ctx context.Context, el *goquery.Selection, extra url.Values) error {
	if el == nil || el.Length() == 0 {
		return errElementMissing
	}

	if target, argument, ok := postBackTarget(el); ok {
		return s.postBack(ctx, target, argument, extra)
	}

	if href, ok := el.Attr("href"); ok && href != "" && !strings.HasPrefix(href, "javascript:") {
		return s.get(ctx, href)
	}

	name, ok := el.Attr("name")
	if !ok {
		return errElementMissing
	}

	value, _ := el.Attr("value")

	fields := url.Values{}
	for k, v := range extra {
		fields[k] = v
	}

	fields.Set(name, value)

	return s.postBack(ctx, "", "", fields)
}

func (s *Session) load(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("portal answered %s for %s", resp.Status, req.URL.Path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	s.doc = doc
	s.pageURL = resp.Request.URL

	return nil
}

func (s *Session) resolve(ref string) (*url.URL, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	base := s.baseURL
	if s.pageURL != nil {
		base = s.pageURL
	}

	return base.ResolveReference(parsed), nil
}

// formValues snapshots every named control on the page, the state a browser
// would send back on postback.
func (s *Session) formValues() url.Values {
	values := url.Values{}

	s.doc.Find("form input[name]").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")

		switch inputType, _ := input.Attr("type"); inputType {
		case "checkbox", "radio":
			if _, checked := input.Attr("checked"); checked {
				values.Set(name, attrOr(input, "value", "on"))
			}
		case "submit", "button", "image":
			// buttons travel as __EVENTTARGET or via click, never in the snapshot
		default:
			value, _ := input.Attr("value")
			values.Set(name, value)
		}
	})

	s.doc.Find("form select[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")

		option := sel.Find("option[selected]").First()
		if option.Length() == 0 {
			option = sel.Find("option").First()
		}

		if option.Length() > 0 {
			values.Set(name, attrOr(option, "value", strings.TrimSpace(option.Text())))
		}
	})

	s.doc.Find("form textarea[name]").Each(func(_ int, area *goquery.Selection) {
		name, _ := area.Attr("name")
		values.Set(name, area.Text())
	})

	return values
}

func (s *Session) formAction() string {
	if action, ok := s.doc.Find("form").First().Attr("action"); ok && action != "" {
		return action
	}

	if s.pageURL != nil {
		return s.pageURL.String()
	}

	return ""
}

// stage records a form field to send with the next postback.
func (s *Session) stage(name, value string) {
	if s.pending == nil {
		s.pending = url.Values{}
	}

	s.pending.Set(name, value)
}

func attrOr(sel *goquery.Selection, name, fallback string) string {
	if value, ok := sel.Attr(name); ok {
		return value
	}

	return fallback
}

var postBackPattern = regexp.MustCompile(`__doPostBack\('([^']+)',\s*'([^']*)'\)`)

// postBackTarget extracts the event target from a __doPostBack href or
// onclick attribute. False when the element triggers no postback.
func postBackTarget(el *goquery.Selection) (target, argument string, ok bool) {
	for _, attr := range []string{"href", "onclick"} {
		raw, found := el.Attr(attr)
		if !found {
			continue
		}

		if m := postBackPattern.FindStringSubmatch(raw); m != nil {
			return m[1], m[2], true
		}
	}

	return "", "", false
}
