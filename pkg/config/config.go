// Package config loads wall parameters and server settings.
//
// Parameter files are TOML or YAML, chosen by file extension:
//
//	[wall]
//	wallWidth = 6.2
//	panelMaterial = "copper"
//
//	[wall.cellShape]
//	kind = "polygon"
//	sides = 6
//
// Fields missing from a file keep their default values. Untyped input such
// as HTML form posts or query strings goes through [ParseValues], which never
// fails and falls back to defaults field by field.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// File is the top-level shape of a perfwall config file.
type File struct {
	Wall   wall.Params `toml:"wall" yaml:"wall" json:"wall"`
	Render Render      `toml:"render" yaml:"render" json:"render"`
	Server Server      `toml:"server" yaml:"server" json:"server"`
}

// Render holds preview rendering preferences.
type Render struct {
	Formats        []string `toml:"formats" yaml:"formats" json:"formats"`
	PixelsPerMeter float64  `toml:"pixelsPerMeter" yaml:"pixelsPerMeter" json:"pixelsPerMeter"`
	Dimensions     bool     `toml:"dimensions" yaml:"dimensions" json:"dimensions"`
	Figure         bool     `toml:"figure" yaml:"figure" json:"figure"`
	Ground         bool     `toml:"ground" yaml:"ground" json:"ground"`
	MaxImageSize   int      `toml:"maxImageSize" yaml:"maxImageSize" json:"maxImageSize"`
}

// DefaultRender returns the rendering defaults: an SVG with all annotations.
func DefaultRender() Render {
	return Render{
		Formats:        []string{"svg"},
		PixelsPerMeter: 200,
		Dimensions:     true,
		Figure:         true,
		Ground:         true,
	}
}

// Defaults returns a File populated with every default.
func Defaults() File {
	return File{
		Wall:   wall.Defaults(),
		Render: DefaultRender(),
		Server: DefaultServer(),
	}
}

// Load reads a config file. The format is picked from the extension:
// .toml, or .yaml/.yml. Environment overrides are applied to the server
// section afterwards.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data, formatOf(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes config data in the given format ("toml" or "yaml") on top
// of the defaults.
func Parse(data []byte, format string) (File, error) {
	f := Defaults()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return File{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse toml")
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse yaml")
		}
	default:
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (want toml or yaml)", format)
	}
	f.Server.ApplyEnv(os.Getenv)
	return f, nil
}

// Encode writes f in the given format.
func Encode(f File, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return buf.Bytes(), nil
}

// IsConfigFile reports whether path has a recognised config extension.
func IsConfigFile(path string) bool {
	return formatOf(path) != ""
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
