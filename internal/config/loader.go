package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the default configuration file name.
const FileName = "stagehook.toml"

// Loader reads configuration layers and decodes them over the defaults.
type Loader struct {
	env *EnvLoader
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnvLoader replaces the environment layer.
func WithEnvLoader(env *EnvLoader) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// NewLoader creates a loader reading STAGEHOOK_* variables.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{env: NewEnvLoader(EnvPrefix)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration file at path, if it exists, and applies the
// environment on top. An empty path uses DefaultPath.
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load reads the configuration file at path, if it exists, and applies the
// environment on top. An empty path uses DefaultPath.
func (l *Loader) Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	return l.build(file)
}

// LoadReader is like Load but reads the file layer from r.
func (l *Loader) LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	file, err := parse("<reader>", data)
	if err != nil {
		return Config{}, err
	}
	return l.build(file)
}

func (l *Loader) build(file map[string]any) (Config, error) {
	merged := file
	if l.env != nil {
		env, err := l.env.Load()
		if err != nil {
			return Config{}, err
		}
		merged = DeepMerge(merged, env)
	}

	cfg, err := decode(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns stagehook.toml in the working directory if present,
// otherwise the file under the user configuration directory.
func DefaultPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "stagehook", FileName)
}

// readFile parses a TOML file into a map. A missing file yields nil.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return m, nil
}

// decode applies a merged layer map over the defaults. Unknown keys and
// mistyped values are errors.
func decode(layers map[string]any) (Config, error) {
	cfg := Default()
	if len(layers) == 0 {
		return cfg, nil
	}

	data, err := toml.Marshal(layers)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: unknown keys:\n%s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// DeepMerge recursively merges src into dst. Values in src override values
// in dst; maps are merged, other types replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
