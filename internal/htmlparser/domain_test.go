package htmlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeDomain(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantDomain  string
		wantLength  int
		wantSpecial string
		wantSub     string
		wantStatus  string
	}{
		{"www stripped", "https://www.example.com", "www.example.com", 7, DomainNone, DomainNone, DomainSuccess},
		{"plain", "https://example.org/path?q=1", "example.org", 7, DomainNone, DomainNone, DomainSuccess},
		{"compound tld", "https://shop.com.pk", "shop.com.pk", 4, DomainNone, DomainContains, DomainFailed},
		{"hyphen allowed", "https://my-site.io", "my-site.io", 7, DomainNone, DomainNone, DomainSuccess},
		{"multi label", "https://blog.example.co.uk", "blog.example.co.uk", 18, DomainContains, DomainContains, DomainFailed},
		{"subdomain", "https://blog.example.com", "blog.example.com", 12, DomainContains, DomainContains, DomainFailed},
		{"too short", "https://a.com", "a.com", 1, DomainNone, DomainNone, DomainFailed},
		{"underscore", "https://my_site.com", "my_site.com", 7, DomainContains, DomainNone, DomainFailed},
		{"uppercase host", "https://WWW.EXAMPLE.NET", "www.example.net", 7, DomainNone, DomainNone, DomainSuccess},
		{"unknown tld kept", "https://example.xyz", "example.xyz", 11, DomainContains, DomainNone, DomainFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := AnalyzeDomain(tt.url, nil)
			assert.Equal(t, tt.wantDomain, rep.Domain)
			assert.Equal(t, tt.wantLength, rep.DomainLength)
			assert.Equal(t, tt.wantSpecial, rep.SpecialCharacters)
			assert.Equal(t, tt.wantSub, rep.Subdomains)
			assert.Equal(t, tt.wantStatus, rep.Status)
			assert.NotEmpty(t, rep.Report)
		})
	}
}

func TestAnalyzeDomain_ReportSentences(t *testing.T) {
	rep := AnalyzeDomain("https://www.example.com", nil)
	assert.Contains(t, rep.Report, "(7 characters) is within the recommended range")
	assert.Contains(t, rep.Report, "contains no special characters")
	assert.Contains(t, rep.Report, "does not use subdomains")

	rep = AnalyzeDomain("https://blog.example.com", nil)
	assert.Contains(t, rep.Report, "contains special characters")
	assert.Contains(t, rep.Report, "uses a subdomain")
}

func TestAnalyzeDomain_CustomTLDs(t *testing.T) {
	rep := AnalyzeDomain("https://example.xyz", []string{"xyz"})
	assert.Equal(t, 7, rep.DomainLength)
	assert.Equal(t, DomainSuccess, rep.Status)

	rep = AnalyzeDomain("https://example.com", []string{})
	assert.Equal(t, 11, rep.DomainLength)
	assert.Equal(t, DomainContains, rep.SpecialCharacters)
}

func TestAnalyzeDomain_Unparsable(t *testing.T) {
	for _, input := range []string{"", "not a url", "example.com", "http://[::1"} {
		rep := AnalyzeDomain(input, nil)
		assert.Equal(t, DomainFailed, rep.Status, "input %q", input)
		assert.Equal(t, DomainUnknown, rep.Domain)
		assert.Equal(t, 0, rep.DomainLength)
		assert.Equal(t, DomainUnknown, rep.SpecialCharacters)
		assert.Equal(t, DomainUnknown, rep.Subdomains)
		assert.Contains(t, rep.Report, "Unable to analyze the domain")
	}
}
