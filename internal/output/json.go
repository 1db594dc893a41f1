package output

import (
	"encoding/json"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

func RenderJSON(result model.LookupResult) (string, error) {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func RenderJSONAll(results []model.LookupResult) (string, error) {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func RenderServersJSON(entries []model.ServerEntry) (string, error) {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
