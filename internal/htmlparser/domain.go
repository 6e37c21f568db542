package htmlparser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	DomainContains = "Contains"
	DomainNone     = "None"
	DomainUnknown  = "Unknown"
	DomainSuccess  = "Success"
	DomainFailed   = "Failed"

	minDomainLength = 2
	maxDomainLength = 63
)

// DefaultTLDs - окончания, отбрасываемые перед подсчетом длины домена
var DefaultTLDs = []string{"com", "org", "net", "io", "co", "in", "gov", "edu", "info", "biz", "dev", "app", "ai", "pk", "com.pk"}

var domainCharPattern = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// DomainReport - лексический анализ имени хоста
type DomainReport struct {
	Domain            string `json:"domain"`
	DomainLength      int    `json:"domainLength"`
	SpecialCharacters string `json:"specialCharacters"`
	Subdomains        string `json:"subdomains"`
	Status            string `json:"status"`
	Report            string `json:"report"`
}

func tldPattern(tlds []string) *regexp.Regexp {
	quoted := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		tld = strings.Trim(strings.TrimSpace(tld), ".")
		if tld != "" {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(tld)))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\.(?:` + strings.Join(quoted, "|") + `)$`)
}

var defaultTLDPattern = tldPattern(DefaultTLDs)

// AnalyzeDomain - функция анализа имени домена: длина без www. и TLD,
// спецсимволы, наличие поддоменов. nil tlds - используется DefaultTLDs.
func AnalyzeDomain(pageURL string, tlds []string) DomainReport {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || u.Hostname() == "" {
		return DomainReport{
			Domain:            DomainUnknown,
			SpecialCharacters: DomainUnknown,
			Subdomains:        DomainUnknown,
			Status:            DomainFailed,
			Report:            fmt.Sprintf("Unable to analyze the domain: %q is not a valid absolute URL.", pageURL),
		}
	}

	pattern := defaultTLDPattern
	if tlds != nil {
		pattern = tldPattern(tlds)
	}

	hostname := strings.ToLower(u.Hostname())
	core := strings.TrimPrefix(hostname, "www.")
	if pattern != nil {
		core = pattern.ReplaceAllString(core, "")
	}

	rep := DomainReport{
		Domain:            hostname,
		DomainLength:      len(core),
		SpecialCharacters: DomainNone,
		Subdomains:        DomainNone,
	}

	hasSpecial := domainCharPattern.MatchString(core)
	if hasSpecial {
		rep.SpecialCharacters = DomainContains
	}
	hasSubdomains := len(strings.Split(hostname, ".")) > 2 && !strings.HasPrefix(hostname, "www.")
	if hasSubdomains {
		rep.Subdomains = DomainContains
	}

	lengthOK := rep.DomainLength >= minDomainLength && rep.DomainLength <= maxDomainLength

	var sentences []string
	if lengthOK {
		sentences = append(sentences, fmt.Sprintf("The domain name length (%d characters) is within the recommended range of %d-%d characters.", rep.DomainLength, minDomainLength, maxDomainLength))
	} else {
		sentences = append(sentences, fmt.Sprintf("The domain name length (%d characters) is outside the recommended range of %d-%d characters.", rep.DomainLength, minDomainLength, maxDomainLength))
	}
	if hasSpecial {
		sentences = append(sentences, "The domain name contains special characters, which can hurt readability and trust.")
	} else {
		sentences = append(sentences, "The domain name contains no special characters.")
	}
	if hasSubdomains {
		sentences = append(sentences, "The URL uses a subdomain, which search engines may treat as a separate site.")
	} else {
		sentences = append(sentences, "The URL does not use subdomains.")
	}
	rep.Report = strings.Join(sentences, " ")

	if lengthOK && !hasSpecial && !hasSubdomains {
		rep.Status = DomainSuccess
	} else {
		rep.Status = DomainFailed
	}
	return rep
}
