package registry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jaxxstorm/whoistrace/internal/model"
	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Servers map[string]model.ServerConfig `yaml:"servers"`
}

// Load merges a YAML override file over the built-in server table and
// returns a new snapshot. File entries replace built-ins for the same TLD.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open server table: %w", err)
	}
	defer file.Close()

	var parsed tableFile
	if err := yaml.NewDecoder(file).Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse server table: %w", err)
	}

	merged := make(map[string]model.ServerConfig, len(defaultServers)+len(parsed.Servers))
	for tld, config := range defaultServers {
		merged[tld] = config
	}
	for tld, config := range parsed.Servers {
		if config.Host == "" {
			return nil, fmt.Errorf("server table: tld %q: host is required", tld)
		}
		merged[tld] = config
	}
	return NewTable(merged), nil
}
