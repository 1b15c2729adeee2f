// Package config loads and validates anatomique.yaml.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up by Find.
const FileName = "anatomique.yaml"

//go:embed default.yaml
var defaultYAML []byte

// Config is one project's build configuration.
type Config struct {
	// OutDir receives the emitted modules, the runtime shim and index.html.
	OutDir string `yaml:"outDir" validate:"required"`
	// Mode is the output shape: class or function.
	Mode string `yaml:"mode" validate:"oneof=class function"`
	// AppRootID is the id of the element the HTML shell mounts into.
	AppRootID string `yaml:"appRootId" validate:"required,excludesall= #."`
	Title     string `yaml:"title"`
	// RuntimeFile is the compiled runtime the shell loads.
	RuntimeFile  string `yaml:"runtimeFile" validate:"required"`
	WasmExecFile string `yaml:"wasmExecFile" validate:"required"`
	LogLevel     string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	// Strict fails the build on warnings.
	Strict bool `yaml:"strict"`
	// Inputs are glob patterns relative to the project directory.
	Inputs []string    `yaml:"inputs" validate:"dive,required"`
	Watch  WatchConfig `yaml:"watch"`
}

// WatchConfig tunes `anatomique watch`.
type WatchConfig struct {
	// Debounce coalesces bursts of file events.
	Debounce time.Duration `yaml:"debounce" validate:"gte=0,lte=1m"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the embedded defaults.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return &c
}

// Load reads path over the defaults and validates the result. A missing
// file is not an error when path is empty.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, c.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Parse(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML into c, keeping values the document does not set.
// Unknown keys are errors.
func Parse(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Find returns the path of FileName in dir, or "" if there is none.
func Find(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	}
	return "", fmt.Errorf("failed to stat %s: %w", path, err)
}

// Validate checks field constraints and reports them one per line.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.ActualTag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "\n"))
}
