package htmlparser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"seoscope/internal/helpers"
)

var (
	headRegionPattern = regexp.MustCompile(`(?is)<head\b[^>]*>(.*?)</head\s*>`)
	bodyRegionPattern = regexp.MustCompile(`(?is)<body\b[^>]*>(.*?)</body\s*>`)
	jsonLDPattern     = regexp.MustCompile(`(?is)(<script\b[^>]*>)(.*?)</script\s*>`)
)

// SchemaReport - канонические и альтернативные ссылки, JSON-LD в <head> и <body>
type SchemaReport struct {
	HeadSchema     []string `json:"headSchema"`
	BodySchema     []string `json:"bodySchema"`
	AlternateLinks []string `json:"alternateLinks"`
	CanonicalLinks []string `json:"canonicalLinks"`
}

// ExtractSearchOptimization - функция поиска canonical/alternate ссылок и блоков JSON-LD.
// Области <head> и <body> определяются первым нежадным совпадением пары тегов.
func ExtractSearchOptimization(html string) SchemaReport {
	rep := SchemaReport{
		HeadSchema:     []string{},
		BodySchema:     []string{},
		AlternateLinks: []string{},
		CanonicalLinks: []string{},
	}

	tags, attrs := findTags(linkPattern, html)
	for i, tag := range tags {
		rels := strings.Fields(strings.ToLower(attrs[i].Get("rel")))
		for _, rel := range rels {
			if rel == "canonical" {
				rep.CanonicalLinks = append(rep.CanonicalLinks, helpers.DecodeEntities(tag))
				break
			}
			if rel == "alternate" {
				rep.AlternateLinks = append(rep.AlternateLinks, helpers.DecodeEntities(tag))
				break
			}
		}
	}

	if m := headRegionPattern.FindStringSubmatch(html); m != nil {
		rep.HeadSchema = append(rep.HeadSchema, findJSONLD(m[1])...)
	}
	if m := bodyRegionPattern.FindStringSubmatch(html); m != nil {
		rep.BodySchema = append(rep.BodySchema, findJSONLD(m[1])...)
	}
	return rep
}

func findJSONLD(region string) []string {
	var blocks []string
	for _, m := range jsonLDPattern.FindAllStringSubmatch(region, -1) {
		typ := strings.ToLower(strings.TrimSpace(helpers.ParseAttrs(m[1]).Get("type")))
		if typ == "application/ld+json" {
			blocks = append(blocks, m[0])
		}
	}
	return blocks
}

// SchemaBlock - результат проверки одного блока JSON-LD
type SchemaBlock struct {
	Location string   `json:"location"`
	Types    []string `json:"types"`
	Errors   []string `json:"errors"`
}

// Valid - блок без ошибок
func (b SchemaBlock) Valid() bool {
	return len(b.Errors) == 0
}

// ValidateSchemaBlocks - проверяет JSON-LD блоки: корректность JSON, @context, @type.
// known - словарь допустимых типов schema.org; nil отключает проверку типов.
func ValidateSchemaBlocks(rep SchemaReport, known map[string]bool) []SchemaBlock {
	blocks := []SchemaBlock{}
	for _, raw := range rep.HeadSchema {
		blocks = append(blocks, validateSchemaBlock("head", raw, known))
	}
	for _, raw := range rep.BodySchema {
		blocks = append(blocks, validateSchemaBlock("body", raw, known))
	}
	return blocks
}

func validateSchemaBlock(location, raw string, known map[string]bool) SchemaBlock {
	block := SchemaBlock{Location: location, Types: []string{}, Errors: []string{}}

	content := raw
	if m := jsonLDPattern.FindStringSubmatch(raw); m != nil {
		content = m[2]
	}
	content = strings.TrimSpace(content)
	if content == "" {
		block.Errors = append(block.Errors, "Пустой JSON-LD блок")
		return block
	}

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		block.Errors = append(block.Errors, "Некорректный JSON: "+err.Error())
		return block
	}

	var nodes []map[string]any
	switch v := parsed.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if node, ok := item.(map[string]any); ok {
					if _, has := node["@context"]; !has {
						node["@context"] = v["@context"]
					}
					nodes = append(nodes, node)
				}
			}
		} else {
			nodes = append(nodes, v)
		}
	case []any:
		for _, item := range v {
			if node, ok := item.(map[string]any); ok {
				nodes = append(nodes, node)
			}
		}
	}
	if len(nodes) == 0 {
		block.Errors = append(block.Errors, "JSON-LD не содержит объектов")
		return block
	}

	for _, node := range nodes {
		checkSchemaNode(node, known, &block)
	}
	return block
}

func checkSchemaNode(node map[string]any, known map[string]bool, block *SchemaBlock) {
	ctx, hasContext := node["@context"]
	if !hasContext || ctx == nil {
		block.Errors = append(block.Errors, "Отсутствует @context")
	} else {
		ctxStr := ""
		switch v := ctx.(type) {
		case string:
			ctxStr = v
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					ctxStr = s
				}
			}
		}
		ctxStr = strings.TrimSuffix(ctxStr, "/")
		if ctxStr != "https://schema.org" && ctxStr != "http://schema.org" {
			block.Errors = append(block.Errors, "@context должен быть 'https://schema.org'")
		}
	}

	typeVal, hasType := node["@type"]
	if !hasType {
		block.Errors = append(block.Errors, "Отсутствует @type")
		return
	}
	for _, t := range helpers.ExtractTypes(typeVal) {
		block.Types = append(block.Types, t)
		if known != nil && !known[t] {
			block.Errors = append(block.Errors, fmt.Sprintf("Неизвестный тип Schema.org: %s", t))
		}
	}
}
