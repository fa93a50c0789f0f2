// Package config loads and shapes the configuration the core consumes.
//
// Config-file loading/validation is itself an external-collaborator concern,
// but the shape of what the core reads is kept here rather than hidden
// behind an opaque map.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for one generation run.
type Config struct {
	Spec   string       `yaml:"spec"`
	Name   string       `yaml:"name"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Parser ParserConfig `yaml:"parser"`

	// Plugins maps plugin name to its record. The
	// handler itself is not YAML-serializable; it is bound at runtime by
	// the façade's plugin registry (pkg/oasgen), keyed by the same name.
	Plugins map[string]PluginConfig `yaml:"plugins"`
	// PluginOrder is read from YAML but not consumed: the orchestrator
	// always derives the instantiation order from each plugin's
	// Dependencies, whatever this list holds.
	PluginOrder []string `yaml:"pluginOrder"`

	// Clients is ambient sugar: each entry registers one of the built-in
	// client-emitter plugins (go, typescript, python, typescript-types)
	// without hand-writing a Plugins entry.
	Clients []Client `yaml:"clients"`
}

// InputConfig carries the document source and ref filters.
type InputConfig struct {
	// Include/Exclude are ordered sequences of ref-pattern filters compiled
	// into predicates over ($ref, schema); an empty Include means accept-all.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// OutputConfig is the root directory for emitted files and the barrel-file
// toggle.
type OutputConfig struct {
	Path      string `yaml:"path"`
	IndexFile bool   `yaml:"indexFile"`
}

// ParserConfig holds the Transform Pass's feature flags.
type ParserConfig struct {
	Transforms TransformsConfig `yaml:"transforms"`
}

// TransformsConfig toggles the two independent, idempotent IR rewrites.
type TransformsConfig struct {
	Enums     EnumTransformConfig      `yaml:"enums"`
	ReadWrite ReadWriteTransformConfig `yaml:"readWrite"`
}

// EnumMode is `inline` (leave enums where declared) or `lift` (synthesize a
// named component and replace the site with a $ref).
type EnumMode string

const (
	EnumModeInline EnumMode = "inline"
	EnumModeLift   EnumMode = "lift"
)

// EnumTransformConfig configures the enum-lift rewrite.
type EnumTransformConfig struct {
	Enabled bool     `yaml:"enabled"`
	Mode    EnumMode `yaml:"mode"`
}

// ReadWriteTransformConfig configures the read/write schema-bifurcation
// rewrite.
type ReadWriteTransformConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PluginConfig is one entry of Config.Plugins:
// `{ config, dependencies, handler, output }`. Handler is resolved by name
// at runtime, not carried in YAML.
type PluginConfig struct {
	Config       map[string]any `yaml:"config"`
	Dependencies []string       `yaml:"dependencies"`
	Output       string         `yaml:"output"`
}

// Client configures one of the built-in template-driven client emitters.
// See DESIGN.md for how it binds into the plugin orchestrator instead of
// being driven by a flat for-loop.
type Client struct {
	Type        string   `yaml:"type"`
	OutDir      string   `yaml:"outDir"`
	PackageName string   `yaml:"packageName"`
	ModuleName  string   `yaml:"moduleName"`
	Name        string   `yaml:"name"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`

	IncludeQueryKeys  bool   `yaml:"includeQueryKeys"`
	OperationIDParser string `yaml:"operationIdParser"`

	PreCommand  []string `yaml:"preCommand"`
	PostCommand []string `yaml:"postCommand"`

	DefaultBaseURL string   `yaml:"defaultBaseURL"`
	ExcludeFiles   []string `yaml:"exclude"`

	TypeAugmentationOptions TypeAugmentationOptions `yaml:"typeAugmentation"`
}

// TypeAugmentationOptions configures the typescript-types plugin.
type TypeAugmentationOptions struct {
	ModuleName     string   `yaml:"moduleName"`
	Namespace      string   `yaml:"namespace"`
	TypeNames      []string `yaml:"typeNames"`
	OutputFileName string   `yaml:"outputFileName"`
}

// GetPreCommand returns the pre-generation command to execute.
func (c *Client) GetPreCommand() []string { return c.PreCommand }

// GetPostCommand returns the post-generation command to execute.
func (c *Client) GetPostCommand() []string { return c.PostCommand }

// ShouldExcludeFile reports whether targetPath (absolute, under c.OutDir)
// matches one of c.ExcludeFiles.
func (c *Client) ShouldExcludeFile(targetPath string) bool {
	if len(c.ExcludeFiles) == 0 {
		return false
	}
	relPath, err := filepath.Rel(c.OutDir, targetPath)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		relPath = ""
	}
	for _, excludePattern := range c.ExcludeFiles {
		normalizedExclude := filepath.ToSlash(excludePattern)
		if relPath == normalizedExclude {
			return true
		}
		if normalizedExclude != "" && strings.HasPrefix(relPath, normalizedExclude+"/") {
			return true
		}
	}
	return false
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Spec == "" {
		return nil, errors.New("config.spec is required")
	}
	for i := range cfg.Clients {
		c := &cfg.Clients[i]
		if c.Type == "" || c.OutDir == "" || c.PackageName == "" || c.Name == "" {
			return nil, fmt.Errorf("clients[%d] missing required fields (type, outDir, packageName, name)", i)
		}
		if !filepath.IsAbs(c.OutDir) {
			abs, _ := filepath.Abs(c.OutDir)
			c.OutDir = abs
		}
	}
	if cfg.Output.Path != "" && !filepath.IsAbs(cfg.Output.Path) {
		abs, _ := filepath.Abs(cfg.Output.Path)
		cfg.Output.Path = abs
	}
	if u, err := url.Parse(cfg.Spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		// keep as-is: remote specs are not absolutized to a filesystem path
	} else if !filepath.IsAbs(cfg.Spec) {
		abs, _ := filepath.Abs(cfg.Spec)
		cfg.Spec = abs
	}
	return &cfg, nil
}
