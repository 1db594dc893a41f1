package parse

import (
	"fmt"
	"strings"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

// Parse never fails: malformed input yields a sparse field map plus
// entries in Errors. The domain is used in diagnostics only.
func Parse(raw string, domain string) model.ParseResult {
	result := model.ParseResult{
		Fields:  model.NewFieldMap(),
		RawText: raw,
	}

	if strings.TrimSpace(raw) == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("empty response for %s", domain))
		return result
	}

	comments := 0
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			// Some registries put operationally relevant notices in
			// comments, so they are kept under synthetic keys.
			text := strings.TrimSpace(strings.TrimLeft(line, "%#"))
			if text == "" {
				continue
			}
			result.Fields.Set(fmt.Sprintf("comment_%d", comments), text)
			comments++
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" {
			continue
		}
		result.Fields.Set(key, value)
	}

	result.Success = result.Fields.Len() > 0
	if !result.Success {
		result.Errors = append(result.Errors, fmt.Sprintf("no parseable fields for %s", domain))
	}
	return result
}
