package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/delaneyj/bindparty/reactive"
)

const (
	DefaultEl              = "#app"
	DefaultDirectivePrefix = "my-"
	DefaultEventPrefix     = "@"
	DefaultLogLevel        = "info"
)

var ErrNotMapping = errors.New("expected a mapping")

// Config is a bindparty project file.
type Config struct {
	Template        string
	El              string
	DirectivePrefix string
	EventPrefix     string
	LogLevel        string

	// Data keeps the key order of the file.
	Data reactive.Fields
	// Methods are declarative: calling one assigns its fields in order.
	Methods map[string]reactive.Fields
}

type rawConfig struct {
	Template        string               `yaml:"template"`
	El              string               `yaml:"el"`
	DirectivePrefix string               `yaml:"directive_prefix"`
	EventPrefix     string               `yaml:"event_prefix"`
	LogLevel        string               `yaml:"log_level"`
	Data            yaml.Node            `yaml:"data"`
	Methods         map[string]yaml.Node `yaml:"methods"`
}

func Default() *Config {
	return &Config{
		El:              DefaultEl,
		DirectivePrefix: DefaultDirectivePrefix,
		EventPrefix:     DefaultEventPrefix,
		LogLevel:        DefaultLogLevel,
		Methods:         map[string]reactive.Fields{},
	}
}

// Load reads the project file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// UnmarshalYAML only overrides the fields present in the document.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	raw := rawConfig{
		Template:        c.Template,
		El:              c.El,
		DirectivePrefix: c.DirectivePrefix,
		EventPrefix:     c.EventPrefix,
		LogLevel:        c.LogLevel,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Template = raw.Template
	c.El = raw.El
	c.DirectivePrefix = raw.DirectivePrefix
	c.EventPrefix = raw.EventPrefix
	c.LogLevel = raw.LogLevel

	if !raw.Data.IsZero() {
		data, err := DecodeFields(&raw.Data)
		if err != nil {
			return fmt.Errorf("data: %w", err)
		}
		c.Data = data
	}

	if c.Methods == nil {
		c.Methods = map[string]reactive.Fields{}
	}
	for name, node := range raw.Methods {
		node := node
		assignments, err := DecodeFields(&node)
		if err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
		c.Methods[name] = assignments
	}
	return nil
}

// LoadData reads a YAML or JSON data file, keeping its key order.
func LoadData(path string) (reactive.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.IsZero() {
		return reactive.Fields{}, nil
	}
	fields, err := DecodeFields(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fields, nil
}

// DecodeFields turns a YAML mapping into ordered fields. Nested mappings
// become nested Fields; sequences and scalars decode as plain values.
func DecodeFields(n *yaml.Node) (reactive.Fields, error) {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at line %d", ErrNotMapping, n.Line)
	}

	fields := make(reactive.Fields, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		var v any
		if value.Kind == yaml.MappingNode {
			nested, err := DecodeFields(value)
			if err != nil {
				return nil, err
			}
			v = nested
		} else if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}
		fields = append(fields, reactive.Field{Key: key.Value, Value: v})
	}
	return fields, nil
}

// ParseScalar decodes a command-line value the way YAML would: 42 is an
// int, true a bool, "x" a string.
func ParseScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	switch v.(type) {
	case map[string]any, []any:
		return s
	}
	return v
}
