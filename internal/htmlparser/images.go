package htmlparser

import (
	"strings"

	"seoscope/internal/helpers"
)

var faviconRels = map[string]bool{
	"icon":             true,
	"shortcut icon":    true,
	"apple-touch-icon": true,
	"mask-icon":        true,
}

// ImageRecord - один <img>
type ImageRecord struct {
	Src        *string `json:"src"`
	Alt        string  `json:"alt"`
	RawElement string  `json:"rawElement"`
}

// FaviconRecord - один <link rel="icon" ...>
type FaviconRecord struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// ImageReport - изображения и иконки страницы
type ImageReport struct {
	Images   []ImageRecord   `json:"images"`
	Favicons []FaviconRecord `json:"favicons"`
}

// MissingAlt - количество изображений с пустым alt
func (r ImageReport) MissingAlt() int {
	n := 0
	for _, img := range r.Images {
		if strings.TrimSpace(img.Alt) == "" {
			n++
		}
	}
	return n
}

// ExtractImages - функция инвентаризации <img> и иконок сайта.
// data-src (ленивая загрузка) приоритетнее src.
func ExtractImages(html string) ImageReport {
	rep := ImageReport{
		Images:   []ImageRecord{},
		Favicons: []FaviconRecord{},
	}

	tags, attrs := findTags(imgPattern, html)
	for i, tag := range tags {
		var src *string
		if v, ok := attrs[i].Lookup("data-src"); ok && strings.TrimSpace(v) != "" {
			src = strPtr(helpers.CleanText(v))
		} else if v, ok := attrs[i].Lookup("src"); ok {
			src = strPtr(helpers.CleanText(v))
		}
		rep.Images = append(rep.Images, ImageRecord{
			Src:        src,
			Alt:        helpers.CleanText(attrs[i].Get("alt")),
			RawElement: tag,
		})
	}

	_, links := findTags(linkPattern, html)
	for _, a := range links {
		rel := helpers.DecodeEntities(a.Get("rel"))
		if !faviconRels[strings.ToLower(strings.TrimSpace(rel))] {
			continue
		}
		rep.Favicons = append(rep.Favicons, FaviconRecord{
			Rel:  rel,
			Href: helpers.DecodeEntities(a.Get("href")),
		})
	}
	return rep
}
