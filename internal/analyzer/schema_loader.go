package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	schemaURL   = "https://schema.org/version/latest/schemaorg-all-http.jsonld"
	schemaFile  = "schemaorg-types.json"
	maxAgeHours = 24
)

// SchemaLoader - загружает словарь типов schema.org и кэширует его на диске
type SchemaLoader struct {
	URL       string
	CachePath string
	MaxAge    time.Duration
	client    *http.Client
	logger    *zap.Logger
}

// NewSchemaLoader - создает загрузчик с кэшем в пользовательском каталоге кэша
func NewSchemaLoader(logger *zap.Logger) *SchemaLoader {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaLoader{
		URL:       schemaURL,
		CachePath: filepath.Join(dir, "seoscope", schemaFile),
		MaxAge:    maxAgeHours * time.Hour,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// LoadSchemaTypes - словарь типов schema.org; при сбое - фоллбэк-список
func LoadSchemaTypes(ctx context.Context, logger *zap.Logger) map[string]bool {
	return NewSchemaLoader(logger).LoadOrFallback(ctx)
}

// LoadOrFallback - как Load, но при ошибке возвращает GetFallbackSchemaTypes
func (l *SchemaLoader) LoadOrFallback(ctx context.Context) map[string]bool {
	types, err := l.Load(ctx)
	if err != nil {
		l.logger.Warn("using fallback schema.org types", zap.Error(err))
		return GetFallbackSchemaTypes()
	}
	return types
}

// Load - функция загрузки типов schema.org (из кэша, если он свежий)
func (l *SchemaLoader) Load(ctx context.Context) (map[string]bool, error) {
	if types, ok := l.readCache(); ok {
		return types, nil
	}

	l.logger.Info("downloading schema.org vocabulary", zap.String("url", l.URL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("некорректный адрес словаря schema.org: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("не удалось скачать schema.org: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ошибка HTTP %d", resp.StatusCode)
	}

	var container struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("ошибка парсинга корневого JSON: %w", err)
	}

	types := make(map[string]bool)
	for _, rawNode := range container.Graph {
		var node map[string]interface{}
		if err := json.Unmarshal(rawNode, &node); err != nil {
			continue
		}

		id, ok := node["@id"].(string)
		if !ok || !isSchemaClass(node) {
			continue
		}

		if typeName := extractTypeName(id); typeName != "" {
			types[typeName] = true
		}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("словарь schema.org не содержит классов")
	}

	l.writeCache(types)
	l.logger.Info("schema.org types loaded", zap.Int("count", len(types)))
	return types, nil
}

func (l *SchemaLoader) readCache() (map[string]bool, bool) {
	info, err := os.Stat(l.CachePath)
	if err != nil || time.Since(info.ModTime()) >= l.MaxAge {
		return nil, false
	}
	data, err := os.ReadFile(l.CachePath)
	if err != nil {
		return nil, false
	}
	var types map[string]bool
	if err := json.Unmarshal(data, &types); err != nil || len(types) == 0 {
		l.logger.Debug("ignoring broken schema cache", zap.String("path", l.CachePath))
		return nil, false
	}
	return types, true
}

func (l *SchemaLoader) writeCache(types map[string]bool) {
	data, err := json.Marshal(types)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(l.CachePath), 0o755); err != nil {
		l.logger.Debug("schema cache dir unavailable", zap.Error(err))
		return
	}
	if err := os.WriteFile(l.CachePath, data, 0o644); err != nil {
		l.logger.Debug("schema cache not written", zap.Error(err))
	}
}

func isSchemaClass(node map[string]interface{}) bool {
	switch v := node["@type"].(type) {
	case string:
		return v == "rdfs:Class"
	case []interface{}:
		for _, t := range v {
			if tStr, ok := t.(string); ok && tStr == "rdfs:Class" {
				return true
			}
		}
	}
	return false
}

func extractTypeName(id string) string {
	switch {
	case strings.HasPrefix(id, "https://schema.org/"), strings.HasPrefix(id, "http://schema.org/"):
		typeName := id[strings.Index(id, "schema.org/")+len("schema.org/"):]
		if idx := strings.Index(typeName, "#"); idx != -1 {
			typeName = typeName[idx+1:]
		}
		return typeName
	case strings.HasPrefix(id, "schema:"):
		return strings.TrimPrefix(id, "schema:")
	}
	return ""
}

// GetFallbackSchemaTypes - возвращает фоллбэк данные, если отсутствуют типы schema.org
func GetFallbackSchemaTypes() map[string]bool {
	return map[string]bool{
		"Thing": true, "CreativeWork": true, "Article": true, "NewsArticle": true, "BlogPosting": true,
		"WebPage": true, "WebSite": true, "Organization": true, "Person": true,
		"Product": true, "Offer": true, "Event": true, "LocalBusiness": true,
		"BreadcrumbList": true, "ListItem": true, "FAQPage": true, "Question": true, "Answer": true,
		"ImageObject": true, "SearchAction": true, "Review": true, "AggregateRating": true,
	}
}
