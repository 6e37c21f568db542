package htmlparser

import (
	"regexp"
	"strings"
)

// SocialPlatform - домен соцсети и ее название
type SocialPlatform struct {
	Domain string
	Name   string
}

// DefaultSocialPlatforms - таблица соцсетей; порядок определяет приоритет совпадения
var DefaultSocialPlatforms = []SocialPlatform{
	{Domain: "facebook.com", Name: "Facebook"},
	{Domain: "fb.com", Name: "Facebook"},
	{Domain: "twitter.com", Name: "Twitter"},
	{Domain: "x.com", Name: "Twitter"},
	{Domain: "instagram.com", Name: "Instagram"},
	{Domain: "linkedin.com", Name: "LinkedIn"},
	{Domain: "pinterest.com", Name: "Pinterest"},
	{Domain: "youtube.com", Name: "YouTube"},
	{Domain: "youtu.be", Name: "YouTube"},
	{Domain: "tiktok.com", Name: "TikTok"},
	{Domain: "reddit.com", Name: "Reddit"},
	{Domain: "snapchat.com", Name: "Snapchat"},
}

var protocolPrefixPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// SocialLink - ссылка на профиль в соцсети
type SocialLink struct {
	SequenceNo int    `json:"sNo"`
	Link       string `json:"link"`
	Platform   string `json:"platform"`
}

// URLCheck - проверка гигиены одной ссылки
type URLCheck struct {
	SequenceNo    int    `json:"sNo"`
	Link          string `json:"link"`
	Lowercase     bool   `json:"lowercase"`
	NoUnderscore  bool   `json:"noUnderscore"`
	NoDoubleSlash bool   `json:"noDoubleSlash"`
	IsValid       bool   `json:"isValid"`
}

// matchPlatform - первая соцсеть таблицы, домен которой входит в имя хоста
func matchPlatform(host string, platforms []SocialPlatform) (SocialPlatform, bool) {
	if host == "" {
		return SocialPlatform{}, false
	}
	for _, p := range platforms {
		if strings.Contains(host, strings.ToLower(p.Domain)) {
			return p, true
		}
	}
	return SocialPlatform{}, false
}

// DetectSocialLinks - функция поиска ссылок на соцсети.
// nil platforms - используется DefaultSocialPlatforms.
func DetectSocialLinks(html string, platforms []SocialPlatform) []SocialLink {
	if platforms == nil {
		platforms = DefaultSocialPlatforms
	}
	links := []SocialLink{}
	for _, a := range findAnchors(html) {
		p, ok := matchPlatform(absoluteHost(a.href), platforms)
		if !ok {
			continue
		}
		links = append(links, SocialLink{
			SequenceNo: len(links) + 1,
			Link:       a.href,
			Platform:   p.Name,
		})
	}
	return links
}

// CheckURLVulnerability - функция проверки гигиены URL ссылок страницы:
// только нижний регистр, без подчеркиваний, без двойных слешей вне схемы.
// Ссылки на соцсети не проверяются.
func CheckURLVulnerability(html string, platforms []SocialPlatform) []URLCheck {
	if platforms == nil {
		platforms = DefaultSocialPlatforms
	}
	checks := []URLCheck{}
	for _, a := range findAnchors(html) {
		if _, social := matchPlatform(absoluteHost(a.href), platforms); social {
			continue
		}
		check := URLCheck{
			SequenceNo:    len(checks) + 1,
			Link:          a.href,
			Lowercase:     a.href == strings.ToLower(a.href),
			NoUnderscore:  !strings.Contains(a.href, "_"),
			NoDoubleSlash: !strings.Contains(protocolPrefixPattern.ReplaceAllString(a.href, ""), "//"),
		}
		check.IsValid = check.Lowercase && check.NoUnderscore && check.NoDoubleSlash
		checks = append(checks, check)
	}
	return checks
}
