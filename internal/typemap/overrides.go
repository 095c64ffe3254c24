package typemap

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed overrides.yaml
var defaultOverridesYAML []byte

// ParamKey identifies one parameter of one member.
type ParamKey struct {
	Class  string
	Member string
	Param  string
}

// MemberKey identifies one member of one class.
type MemberKey struct {
	Class  string
	Member string
}

// Overrides holds exact-match type corrections. Parameter and return
// entries are kept apart so a return override never leaks into a parameter.
type Overrides struct {
	Params  map[ParamKey]string
	Returns map[MemberKey]string
}

// NewOverrides returns empty tables.
func NewOverrides() *Overrides {
	return &Overrides{
		Params:  make(map[ParamKey]string),
		Returns: make(map[MemberKey]string),
	}
}

type overrideFile struct {
	Parameters []paramEntry  `yaml:"parameters" validate:"dive"`
	Returns    []returnEntry `yaml:"returns" validate:"dive"`
}

type paramEntry struct {
	Class  string `yaml:"class" validate:"required"`
	Member string `yaml:"member" validate:"required"`
	Param  string `yaml:"param" validate:"required"`
	Type   string `yaml:"type" validate:"required"`
}

type returnEntry struct {
	Class  string `yaml:"class" validate:"required"`
	Member string `yaml:"member" validate:"required"`
	Type   string `yaml:"type" validate:"required"`
}

// DefaultOverrides returns the built-in correction tables.
func DefaultOverrides() *Overrides {
	o, err := ParseOverrides(defaultOverridesYAML)
	if err != nil {
		panic(fmt.Sprintf("typemap: embedded overrides are invalid: %v", err))
	}
	return o
}

// ParseOverrides decodes and validates override tables from YAML.
func ParseOverrides(data []byte) (*Overrides, error) {
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid overrides: %w", err)
	}

	o := NewOverrides()
	for _, e := range file.Parameters {
		o.Params[ParamKey{Class: e.Class, Member: e.Member, Param: e.Param}] = e.Type
	}
	for _, e := range file.Returns {
		o.Returns[MemberKey{Class: e.Class, Member: e.Member}] = e.Type
	}
	return o, nil
}

// LoadOverrides reads override tables from a YAML file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return ParseOverrides(data)
}

// Merge copies every entry of other into o, replacing existing keys.
func (o *Overrides) Merge(other *Overrides) {
	if other == nil {
		return
	}
	maps.Copy(o.Params, other.Params)
	maps.Copy(o.Returns, other.Returns)
}

// Param looks up a parameter override.
func (o *Overrides) Param(class, member, param string) (string, bool) {
	t, ok := o.Params[ParamKey{Class: class, Member: member, Param: param}]
	return t, ok
}

// Return looks up a return-type override.
func (o *Overrides) Return(class, member string) (string, bool) {
	t, ok := o.Returns[MemberKey{Class: class, Member: member}]
	return t, ok
}
