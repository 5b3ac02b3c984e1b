package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of stagehook environment variables.
const EnvPrefix = "STAGEHOOK_"

type valueKind uint8

const (
	stringValue valueKind = iota
	boolValue
	intValue
	listValue
)

// settings lists every configuration path and how an environment string
// converts to it.
var settings = map[string]valueKind{
	"dispatcher.disabled_kinds": listValue,
	"dispatcher.recover_panics": boolValue,
	"dispatcher.metrics":        boolValue,
	"trigger.workers":           intValue,
	"trigger.queue_size":        intValue,
	"trigger.timeout":           stringValue,
	"trigger.script":            stringValue,
	"logging.level":             stringValue,
	"logging.format":            stringValue,
}

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string
	aliases map[string]string // variable -> config path
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		aliases: map[string]string{
			prefix + "LOG_LEVEL":  "logging.level",
			prefix + "LOG_FORMAT": "logging.format",
		},
		environ: os.Environ,
	}
}

// WithEnviron returns a copy of the loader reading variables from fn
// instead of the process environment.
func (l *EnvLoader) WithEnviron(fn func() []string) *EnvLoader {
	c := *l
	c.environ = fn
	return &c
}

// Load returns the configuration map set by the environment. Variables
// with the prefix that name no setting are ignored.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, ok := l.aliases[name]
		if !ok {
			path = l.envToPath(name)
		}
		kind, known := settings[path]
		if !known {
			continue
		}

		v, err := parseValue(kind, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
		setByPath(config, path, v)
	}
	return config, nil
}

// envToPath converts STAGEHOOK_TRIGGER_QUEUE_SIZE to trigger.queue_size.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}

func parseValue(kind valueKind, s string) (any, error) {
	switch kind {
	case boolValue:
		return strconv.ParseBool(strings.TrimSpace(s))
	case intValue:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err
	case listValue:
		items := []any{}
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return s, nil
	}
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
