package htmlparser

import (
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/temoto/robotstxt"
)

// IndexationReport - доступность страницы для индексации
type IndexationReport struct {
	HasRobotsTxt bool `json:"hasRobotsTxt"`
	HasSitemap   bool `json:"hasSitemap"`
	// RobotsAllowed - nil, если robots.txt отсутствует или не разобран
	RobotsAllowed *bool  `json:"robotsAllowed"`
	SitemapKind   string `json:"sitemapKind"`
	SitemapURLs   int    `json:"sitemapUrls"`
	MetaNoindex   bool   `json:"metaNoindex"`
	MetaNofollow  bool   `json:"metaNofollow"`
}

// Indexable - страница не закрыта ни robots.txt, ни meta robots
func (r IndexationReport) Indexable() bool {
	if r.MetaNoindex {
		return false
	}
	return r.RobotsAllowed == nil || *r.RobotsAllowed
}

type sitemapDoc struct {
	XMLName xml.Name
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// CheckIndexation - функция проверки индексации: robots.txt для заданного
// User-Agent, состав sitemap.xml и директивы meta robots
func CheckIndexation(page Page, metaRobots *string, userAgent string) IndexationReport {
	rep := IndexationReport{
		HasRobotsTxt: page.RobotsTxt != "" && page.RobotsTxt != NoRobotsTxt,
		HasSitemap:   page.SitemapXML != "" && page.SitemapXML != NoSitemapXML,
	}

	if rep.HasRobotsTxt {
		if robots, err := robotstxt.FromString(page.RobotsTxt); err == nil {
			path := "/"
			if u, err := url.Parse(page.URL); err == nil && u.EscapedPath() != "" {
				path = u.EscapedPath()
			}
			rep.RobotsAllowed = boolPtr(robots.TestAgent(path, userAgent))
		}
	}

	if rep.HasSitemap {
		var doc sitemapDoc
		if err := xml.Unmarshal([]byte(page.SitemapXML), &doc); err == nil {
			rep.SitemapKind = doc.XMLName.Local
			rep.SitemapURLs = len(doc.URLs) + len(doc.Sitemaps)
		}
	}

	if metaRobots != nil {
		for _, directive := range strings.Split(strings.ToLower(*metaRobots), ",") {
			switch strings.TrimSpace(directive) {
			case "noindex":
				rep.MetaNoindex = true
			case "nofollow":
				rep.MetaNofollow = true
			case "none":
				rep.MetaNoindex = true
				rep.MetaNofollow = true
			}
		}
	}
	return rep
}
