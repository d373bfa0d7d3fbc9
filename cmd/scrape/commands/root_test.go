package commands

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/onnise/beyond-ads-scraper/internal/dto"
)

func TestBuildRequest(t *testing.T) {
	tests := map[string]struct {
		in      options
		want    dto.ScrapeRequest
		wantErr bool
	}{
		"search":         {in: options{search: " dentists in Beirut ", total: 5}, want: dto.ScrapeRequest{Query: "dentists in Beirut", MaxResults: 5}},
		"catalog":        {in: options{search: "ignored", industry: "Dentists", area: "Beirut", total: 20}, want: dto.ScrapeRequest{Industry: "Dentists", Area: "Beirut", MaxResults: 20}},
		"industry alone": {in: options{industry: "Dentists", total: 5}, wantErr: true},
		"empty search":   {in: options{search: "  ", total: 5}, wantErr: true},
		"zero total":     {in: options{search: "x", total: 0}, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := buildRequest(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		in   options
		want string
	}{
		{options{output: "result.csv"}, "result.csv"},
		{options{output: "result.csv", xlsx: true}, "result.xlsx"},
		{options{output: "leads.XLSX", xlsx: true}, "leads.XLSX"},
		{options{output: "leads", xlsx: true}, "leads.xlsx"},
	}
	for _, tc := range cases {
		if got := outputPath(tc.in); got != tc.want {
			t.Fatalf("outputPath(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
