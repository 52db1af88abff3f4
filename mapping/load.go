package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Load reads a mapping from path; the extension picks the decoder
// (.json, .yaml/.yml, .toml). The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(data, formatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load mapping %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format ("json", "yaml" or "toml").
func Decode(data []byte, format string) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = decodeTOML(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// floatKeys are the float64 fields of each binding table. TOML keeps
// integers and floats apart, so "scale = 100" decodes as int64.
var floatKeys = map[string][]string{
	"axes":    {"deadZone", "scale"},
	"buttons": {"threshold"},
}

func decodeTOML(data []byte, cfg *Config) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	for table, keys := range floatKeys {
		bindings, _ := tree.Get(table).([]*toml.Tree)
		for _, b := range bindings {
			for _, k := range keys {
				if v, ok := b.Get(k).(int64); ok {
					b.Set(k, float64(v))
				}
			}
		}
	}
	return tree.Unmarshal(cfg)
}

// Encode renders c in the given format.
func Encode(c *Config, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(c, "", "  ")
	case "yaml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(*c)
	default:
		return nil, fmt.Errorf("unsupported mapping format %q", format)
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}
