package uiconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// LoadFS walks the provided filesystem and parses JSON/YAML configuration
// files. When fsys is nil or no files are present, the returned store is
// empty. A configuration or form name declared twice is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uiconfig: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single JSON or YAML document. source names the document in
// error messages.
func Parse(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	store := newStore()
	if err := store.add(doc, source); err != nil {
		return nil, err
	}
	return store, nil
}

func newStore() *Store {
	return &Store{configs: make(map[string]entry), forms: make(map[string]Form)}
}

func (s *Store) add(doc document, source string) error {
	for name, cfg := range doc.configs {
		if _, exists := s.configs[name]; exists {
			return fmt.Errorf("uiconfig: duplicate config %q (file %s)", name, source)
		}
		s.configs[name] = entry{config: cfg, source: source}
	}
	for name, raw := range doc.forms {
		if _, exists := s.forms[name]; exists {
			return fmt.Errorf("uiconfig: duplicate form %q (file %s)", name, source)
		}
		form, err := normaliseForm(raw, name, source)
		if err != nil {
			return err
		}
		s.forms[name] = form
	}
	return nil
}

type document struct {
	configs map[string]widgets.Config
	forms   map[string]formFile
}

type formFile struct {
	Order  []string               `json:"order" yaml:"order"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

type jsonDocument struct {
	Configs map[string]json.RawMessage `json:"configs"`
	Forms   map[string]formFile        `json:"forms"`
}

type yamlDocument struct {
	Configs map[string]yaml.Node `yaml:"configs"`
	Forms   map[string]formFile  `yaml:"forms"`
}

// parseDocument tries JSON first and falls back to YAML. Each configuration
// is decoded over widgets.DefaultConfig so omitted keys keep their defaults.
func parseDocument(data []byte, source string) (document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return document{}, fmt.Errorf("uiconfig: file %s is empty", source)
	}

	var jsonDoc jsonDocument
	if err := json.Unmarshal(data, &jsonDoc); err == nil {
		doc := document{configs: make(map[string]widgets.Config, len(jsonDoc.Configs)), forms: jsonDoc.Forms}
		for rawName, raw := range jsonDoc.Configs {
			name, err := configName(rawName, source)
			if err != nil {
				return document{}, err
			}
			cfg := widgets.DefaultConfig()
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return document{}, fmt.Errorf("uiconfig: file %s config %q: %w", source, name, err)
			}
			doc.configs[name] = cfg
		}
		return doc, nil
	}

	var yamlDoc yamlDocument
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return document{}, fmt.Errorf("uiconfig: parse %s: invalid JSON or YAML", source)
	}
	doc := document{configs: make(map[string]widgets.Config, len(yamlDoc.Configs)), forms: yamlDoc.Forms}
	for rawName, node := range yamlDoc.Configs {
		name, err := configName(rawName, source)
		if err != nil {
			return document{}, err
		}
		cfg := widgets.DefaultConfig()
		if err := node.Decode(&cfg); err != nil {
			return document{}, fmt.Errorf("uiconfig: file %s config %q: %w", source, name, err)
		}
		doc.configs[name] = cfg
	}
	return doc, nil
}

func configName(raw, source string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("uiconfig: file %s defines a config with an empty name", source)
	}
	return name, nil
}

func normaliseForm(raw formFile, name, source string) (Form, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Form{}, fmt.Errorf("uiconfig: file %s defines a form with an empty name", source)
	}
	form := Form{
		Name:   name,
		Source: source,
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}
	for idx, attribute := range raw.Order {
		attribute = strings.TrimSpace(attribute)
		if attribute == "" {
			return Form{}, fmt.Errorf("uiconfig: form %q (file %s) order contains an empty entry at index %d", name, source, idx)
		}
		form.Order = append(form.Order, attribute)
	}
	for key, cfg := range raw.Fields {
		attribute := strings.TrimSpace(key)
		if attribute == "" {
			return Form{}, fmt.Errorf("uiconfig: form %q (file %s) defines a field with an empty name", name, source)
		}
		if _, exists := form.Fields[attribute]; exists {
			return Form{}, fmt.Errorf("uiconfig: form %q (file %s) defines duplicate field %q", name, source, attribute)
		}
		cfg.Items = append([]string(nil), cfg.Items...)
		form.Fields[attribute] = cfg
	}
	return form, nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
