package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON - выводит отчет (страницы или сайта) в формате JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
