package htmlparser

import (
	"encoding/json"
	"fmt"
	"regexp"

	"seoscope/internal/helpers"
)

// HeadingNotFound - маркер уровня заголовков без единого вхождения
const HeadingNotFound = "Not Found"

var headingPatterns = func() [6]*regexp.Regexp {
	var patterns [6]*regexp.Regexp
	for level := 1; level <= 6; level++ {
		patterns[level-1] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d\b[^>]*>(.*?)</h%d\s*>`, level, level))
	}
	return patterns
}()

// Headings - тексты заголовков одного уровня
type Headings []string

// Found - есть ли на странице заголовки этого уровня
func (h Headings) Found() bool {
	return len(h) > 0
}

// MarshalJSON - пустой уровень кодируется строкой "Not Found"
func (h Headings) MarshalJSON() ([]byte, error) {
	if !h.Found() {
		return json.Marshal(HeadingNotFound)
	}
	return json.Marshal([]string(h))
}

// HeadingSet - заголовки h1–h6
type HeadingSet struct {
	H1 Headings `json:"h1"`
	H2 Headings `json:"h2"`
	H3 Headings `json:"h3"`
	H4 Headings `json:"h4"`
	H5 Headings `json:"h5"`
	H6 Headings `json:"h6"`
}

// Level - заголовки уровня 1..6; для других значений nil
func (hs *HeadingSet) Level(level int) Headings {
	if ptr := hs.level(level); ptr != nil {
		return *ptr
	}
	return nil
}

func (hs *HeadingSet) level(level int) *Headings {
	switch level {
	case 1:
		return &hs.H1
	case 2:
		return &hs.H2
	case 3:
		return &hs.H3
	case 4:
		return &hs.H4
	case 5:
		return &hs.H5
	case 6:
		return &hs.H6
	}
	return nil
}

// ExtractHeadings - функция сбора текстов заголовков h1–h6.
// Вложенные <script>/<style> и теги удаляются, пустые заголовки отбрасываются.
func ExtractHeadings(html string) HeadingSet {
	var hs HeadingSet
	for level, pattern := range headingPatterns {
		var texts Headings
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			if text := helpers.GetText(m[1]); text != "" {
				texts = append(texts, text)
			}
		}
		*hs.level(level + 1) = texts
	}
	return hs
}
