package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

const (
	trackingPrefix     = "utm_"
	defaultHTTPTimeout = 5 * time.Second
)

var idnaProfile = idna.Lookup

var socialDomains = map[string]string{
	"instagram.com": "instagram",
	"instagr.am":    "instagram",
	"facebook.com":  "facebook",
	"fb.com":        "facebook",
	"fb.me":         "facebook",
	"linkedin.com":  "linkedin",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"tiktok.com":    "tiktok",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"wa.me":         "whatsapp",
	"whatsapp.com":  "whatsapp",
	"linktr.ee":     "linktree",
}

// WebsiteResult splits a listing link into website and social columns.
type WebsiteResult struct {
	Website   string
	Instagram string
	Facebook  string
	// Social names the network when the link was excluded from Website.
	Social    string
	SocialURL string
}

// ClassifyWebsite normalizes a listing link. Social-network links never end up
// in Website.
func ClassifyWebsite(raw string) WebsiteResult {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "invalid") {
		return WebsiteResult{}
	}

	lowered := strings.ToLower(raw)
	u, err := sanitizeURL(raw)
	if err != nil {
		// unparsable values are still checked for social hosts
		if platform, ok := hostMatchesSocial(rawHost(lowered)); ok {
			return socialResult(platform, raw)
		}
		return socialBySubstring(lowered, raw)
	}
	u = unwrapRedirect(u)
	stripTracking(u)
	link := u.String()

	if platform, ok := hostMatchesSocial(u.Hostname()); ok {
		return socialResult(platform, link)
	}
	if res := socialBySubstring(strings.ToLower(link), link); res.Social != "" {
		return res
	}
	return WebsiteResult{Website: link}
}

// socialBySubstring catches social mentions outside the host. The link is
// kept out of Website but only a matching host fills Instagram or Facebook.
func socialBySubstring(lowered, link string) WebsiteResult {
	switch {
	case strings.Contains(lowered, "instagram.com"):
		return WebsiteResult{Social: "instagram", SocialURL: link}
	case strings.Contains(lowered, "facebook.com"):
		return WebsiteResult{Social: "facebook", SocialURL: link}
	}
	return WebsiteResult{}
}

func rawHost(lowered string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(lowered, "https://"), "http://")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return host
}

func socialResult(platform, link string) WebsiteResult {
	res := WebsiteResult{Social: platform, SocialURL: link}
	switch platform {
	case "instagram":
		res.Instagram = link
	case "facebook":
		res.Facebook = link
	}
	return res
}

func hostMatchesSocial(host string) (string, bool) {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	if host == "" {
		return "", false
	}
	for domain, platform := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform, true
		}
	}
	return "", false
}

// unwrapRedirect resolves google.com/url?q=<target> links.
func unwrapRedirect(u *url.URL) *url.URL {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if !strings.HasPrefix(host, "google.") || u.Path != "/url" {
		return u
	}
	query := u.Query()
	target := query.Get("q")
	if target == "" {
		target = query.Get("url")
	}
	inner, err := sanitizeURL(target)
	if err != nil {
		return u
	}
	return inner
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.New("unsupported scheme")
	}
	u.Scheme = scheme

	host, err := idnaProfile.ToASCII(strings.ToLower(u.Hostname()))
	if err != nil || host == "" || !isDomainValid(host) {
		return nil, errors.New("invalid host")
	}
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}
	u.Host = host
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

// HTTPClient abstracts HTTP requests for reachability checks.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebsiteChecker reports whether a website answers with 200.
type WebsiteChecker struct {
	client HTTPClient
}

// NewWebsiteChecker builds a checker; a nil client gets a default with timeout.
func NewWebsiteChecker(client HTTPClient) *WebsiteChecker {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &WebsiteChecker{client: client}
}

// Reachable tries HEAD first and falls back to GET when HEAD is not allowed.
func (c *WebsiteChecker) Reachable(ctx context.Context, target string) bool {
	if c == nil || c.client == nil || target == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return true
		}
		if resp.StatusCode != http.StatusMethodNotAllowed {
			return false
		}
	}

	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	resp, err = c.client.Do(getReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
