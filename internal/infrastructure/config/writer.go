package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// WriteDefault writes a default config file to path.
func WriteDefault(path string) error {
	if Exists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return Write(path, Default())
}

// Write writes the given config to path.
func Write(path string, cfg *Config) error {
	var buf bytes.Buffer
	buf.WriteString("# mens configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// Set stores value under a dotted key, creating nested tables as needed,
// and reloads the store.
func (s *Store) Set(key string, value any) error {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("invalid config key %q", key)
		}
	}

	tree := map[string]any{}
	if Exists(s.path) {
		if _, err := toml.DecodeFile(s.path, &tree); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}

	setNested(tree, parts, value)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := writeFile(s.path, buf.Bytes()); err != nil {
		return err
	}

	return s.reload()
}

func setNested(tree map[string]any, parts []string, value any) {
	node := tree
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}

// ParseSmartValue converts "true"/"false" to bool, integers to int64 and
// floats to float64. Anything else stays a string.
func ParseSmartValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}
