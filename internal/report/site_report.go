package report

import (
	"encoding/json"
	"sort"

	"seoscope/internal/htmlparser"
)

const slowPageMs = 2000

// CrawlResult — результат анализа одной страницы в рамках краулинга
type CrawlResult struct {
	URL    string
	Depth  int
	Report *SEOReport
	Error  error
}

// MarshalJSON - ошибка сериализуется строкой
func (cr CrawlResult) MarshalJSON() ([]byte, error) {
	var errText *string
	if cr.Error != nil {
		s := cr.Error.Error()
		errText = &s
	}
	return json.Marshal(struct {
		URL    string     `json:"url"`
		Depth  int        `json:"depth"`
		Report *SEOReport `json:"report"`
		Error  *string    `json:"error"`
	}{cr.URL, cr.Depth, cr.Report, errText})
}

// SiteReport — сводный отчёт по всему сайту
type SiteReport struct {
	MainURL    string        `json:"mainUrl"`
	MainReport *SEOReport    `json:"mainReport"`
	SubReports []CrawlResult `json:"subReports"`
}

// SlowPage - страница с долгой загрузкой
type SlowPage struct {
	URL  string
	Time int64
}

// WarningFrequency - текст предупреждения и число страниц с ним
type WarningFrequency struct {
	Text  string
	Count int
}

// SiteSummary - агрегаты по всем просканированным страницам
type SiteSummary struct {
	Pages          int
	Errors         int
	Warnings       int
	MissingTitles  int
	MissingH1      int
	BrokenPages    int
	NoCustom404    int
	InsecureBlanks int
	SlowPages      []SlowPage
	TopWarnings    []WarningFrequency
}

// Summary - функция подсчета сводки по сайту
func (sr *SiteReport) Summary() SiteSummary {
	s := SiteSummary{Pages: len(sr.SubReports)}
	warnFreq := make(map[string]int)

	for _, res := range sr.SubReports {
		if res.Error != nil || res.Report == nil {
			s.Errors++
			continue
		}
		rep := res.Report
		s.Errors += len(rep.Errors)
		s.Warnings += len(rep.Warnings)
		if rep.MetaTags.Title.Length == 0 {
			s.MissingTitles++
		}
		if !rep.Headings.H1.Found() {
			s.MissingH1++
		}
		if rep.StatusCode >= 400 {
			s.BrokenPages++
		}
		if rep.Custom404.Custom404 == htmlparser.Custom404No {
			s.NoCustom404++
		}
		s.InsecureBlanks += len(rep.Security.Findings)
		if rep.ResponseTimeMs > slowPageMs {
			s.SlowPages = append(s.SlowPages, SlowPage{res.URL, rep.ResponseTimeMs})
		}
		for _, w := range rep.Warnings {
			warnFreq[w]++
		}
	}

	sort.Slice(s.SlowPages, func(i, j int) bool {
		return s.SlowPages[i].Time > s.SlowPages[j].Time
	})

	for text, count := range warnFreq {
		s.TopWarnings = append(s.TopWarnings, WarningFrequency{text, count})
	}
	sort.Slice(s.TopWarnings, func(i, j int) bool {
		if s.TopWarnings[i].Count != s.TopWarnings[j].Count {
			return s.TopWarnings[i].Count > s.TopWarnings[j].Count
		}
		return s.TopWarnings[i].Text < s.TopWarnings[j].Text
	})
	return s
}
