package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClassifyWebsite(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		website   string
		instagram string
		facebook  string
		social    string
	}{
		{"empty", "", "", "", "", ""},
		{"invalid marker", "invalid", "", "", "", ""},
		{"plain site", "https://www.acme.com.lb/", "https://www.acme.com.lb/", "", "", ""},
		{"scheme added", "acme.com.lb", "https://acme.com.lb", "", "", ""},
		{"http kept", "http://acme.com.lb/contact", "http://acme.com.lb/contact", "", "", ""},
		{"tracking stripped", "https://acme.com.lb/?utm_source=maps", "https://acme.com.lb/", "", "", ""},
		{"instagram", "https://www.instagram.com/acme/", "", "https://www.instagram.com/acme/", "", "instagram"},
		{"facebook mobile", "https://m.facebook.com/acme", "", "", "https://m.facebook.com/acme", "facebook"},
		{"linkedin excluded", "https://www.linkedin.com/company/acme", "", "", "", "linkedin"},
		{"whatsapp excluded", "https://wa.me/9613123456", "", "", "", "whatsapp"},
		{
			"google redirect to instagram",
			"https://www.google.com/url?q=https://instagram.com/acme&sa=U",
			"", "https://instagram.com/acme", "", "instagram",
		},
		{
			"google redirect to site",
			"https://www.google.com/url?q=http://acme.com.lb/&opi=1",
			"http://acme.com.lb/", "", "", "",
		},
		{"unparsable instagram", "instagram.com/acme%zz", "", "instagram.com/acme%zz", "", "instagram"},
		{"instagram mentioned in query", "https://example.com/?ref=instagram.com", "", "", "", "instagram"},
		{"facebook mentioned in path", "https://example.com/facebook.com/acme", "", "", "", "facebook"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyWebsite(tc.raw)
			if got.Website != tc.website || got.Instagram != tc.instagram || got.Facebook != tc.facebook || got.Social != tc.social {
				t.Fatalf("unexpected result for %q: %+v", tc.raw, got)
			}
		})
	}
}

func TestClassifyWebsiteNeverKeepsSocialHosts(t *testing.T) {
	inputs := []string{
		"instagram.com/acme",
		"HTTPS://INSTAGRAM.COM/ACME",
		"https://web.facebook.com/acme?ref=page",
		"https://www.tiktok.com/@acme",
	}
	for _, in := range inputs {
		got := ClassifyWebsite(in)
		lowered := strings.ToLower(got.Website)
		if got.Website != "" || strings.Contains(lowered, "instagram.com") || strings.Contains(lowered, "facebook.com") {
			t.Fatalf("social link kept as website for %q: %+v", in, got)
		}
	}
}

func TestSanitizeURLRejectsBadHosts(t *testing.T) {
	for _, raw := range []string{"", "localhost", "ftp://acme.com", "https://-bad-.com"} {
		if _, err := sanitizeURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestWebsiteCheckerFallsBackToGet(t *testing.T) {
	client := &stubHTTPClient{
		responses: map[string]int{
			"HEAD https://acme.com.lb": http.StatusMethodNotAllowed,
			"GET https://acme.com.lb":  http.StatusOK,
			"HEAD https://gone.com.lb": http.StatusNotFound,
			"HEAD https://ok.com.lb":   http.StatusOK,
		},
	}
	checker := NewWebsiteChecker(client)
	ctx := context.Background()

	if !checker.Reachable(ctx, "https://acme.com.lb") {
		t.Fatalf("expected GET fallback to succeed")
	}
	if checker.Reachable(ctx, "https://gone.com.lb") {
		t.Fatalf("expected 404 to be unreachable")
	}
	if !checker.Reachable(ctx, "https://ok.com.lb") {
		t.Fatalf("expected HEAD 200 to be reachable")
	}
	if checker.Reachable(ctx, "https://unknown.com.lb") {
		t.Fatalf("expected transport error to be unreachable")
	}
}

type stubHTTPClient struct {
	responses map[string]int
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	key := req.Method + " " + req.URL.String()
	status, ok := s.responses[key]
	if !ok {
		return nil, errors.New("unexpected request: " + key)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}
