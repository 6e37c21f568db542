package helpers

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	attrPattern = regexp.MustCompile("([^\\s\"'<>/=]+)(?:\\s*=\\s*(?:\"([^\"]*)\"|'([^']*)'|([^\\s\"'=<>`]+)))?")

	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockPattern  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	anyTagPattern      = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Attrs - атрибуты одного стартового тега, ключи в нижнем регистре
type Attrs map[string]string

// ParseAttrs - функция разбора атрибутов стартового тега вида <meta name="x" content='y'>.
// Порядок атрибутов и тип кавычек не важны, при повторе побеждает первый атрибут.
func ParseAttrs(tag string) Attrs {
	attrs := make(Attrs)

	rest := strings.TrimSpace(tag)
	rest = strings.TrimPrefix(rest, "<")
	if end := strings.IndexAny(rest, " \t\r\n\f/>"); end != -1 {
		rest = rest[end:]
	} else {
		return attrs
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, ">"), "/")

	for _, m := range attrPattern.FindAllStringSubmatch(rest, -1) {
		key := strings.ToLower(m[1])
		if _, exists := attrs[key]; exists {
			continue
		}
		attrs[key] = m[2] + m[3] + m[4]
	}
	return attrs
}

// Lookup - функция проверки наличия атрибута и получения его значения
func (a Attrs) Lookup(key string) (string, bool) {
	val, ok := a[strings.ToLower(key)]
	return val, ok
}

// Get - значение атрибута или пустая строка
func (a Attrs) Get(key string) string {
	val, _ := a.Lookup(key)
	return val
}

// Has - проверяет наличие атрибута
func (a Attrs) Has(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// GetMetaAttrsFull - функция получения name/property/content meta-тега
func GetMetaAttrsFull(tag string) (name, prop, content string) {
	attrs := ParseAttrs(tag)
	return attrs.Get("name"), attrs.Get("property"), attrs.Get("content")
}

// DecodeEntities - декодирует HTML-сущности (&amp;, &#038;, &eacute; ...).
// Некорректные последовательности остаются как есть.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// CleanText - декодирует сущности и обрезает пробелы
func CleanText(s string) string {
	return strings.TrimSpace(DecodeEntities(s))
}

// GetText - функция получения текстового содержимого фрагмента разметки:
// без <script>/<style>, без тегов, с декодированными сущностями
func GetText(fragment string) string {
	text := scriptBlockPattern.ReplaceAllString(fragment, "")
	text = styleBlockPattern.ReplaceAllString(text, "")
	text = anyTagPattern.ReplaceAllString(text, "")
	return CleanText(text)
}

// ExtractTypes - функция извлечения типов
func ExtractTypes(v any) []string {
	var types []string
	switch val := v.(type) {
	case string:
		types = append(types, val)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
	}
	return types
}
