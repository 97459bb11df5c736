package world

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/the_deep.yaml
var defaultWorld []byte

// Default builds a fresh copy of the built-in world.
func Default() (*World, error) {
	return Parse(defaultWorld)
}

// DefaultSource returns the raw YAML of the built-in world.
func DefaultSource() []byte {
	return bytes.Clone(defaultWorld)
}

// LoadFile reads and validates a world definition from disk.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("world file %s: %w", path, err)
	}
	return w, nil
}

// Decode strict-decodes a world definition without validating it.
// Unknown fields are rejected. Rules not present in the document keep their defaults.
func Decode(data []byte) (*World, error) {
	w := &World{Rules: DefaultRules()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("world definition is empty")
		}
		return nil, fmt.Errorf("failed strict YAML unmarshaling: %w", err)
	}

	for id, loc := range w.Locations {
		if loc != nil {
			loc.ID = id
			loc.Visited = false
		}
	}
	for id, it := range w.Items {
		if it != nil {
			it.ID = id
			it.normalize()
		}
	}
	for id, e := range w.Enemies {
		if e != nil {
			e.ID = id
		}
	}
	return w, nil
}

// Parse decodes and validates a world definition. Any integrity problem is
// reported as a *ConfigurationError listing every problem found.
func Parse(data []byte) (*World, error) {
	w, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
