package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml> [more.yaml...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -builtin\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &WorldValidator{}
		var err error
		if filename == "-builtin" {
			fmt.Println("Validating built-in world...")
			err = validator.validateData(world.DefaultSource(), "built-in world")
		} else {
			err = validator.validateFile(filename)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Println("World file is valid!")
	}
	if failed {
		os.Exit(1)
	}
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("world file must have .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., the_deep.yaml, not The-Deep.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return v.validateData(data, filename)
}

func (v *WorldValidator) validateData(data []byte, name string) error {
	v.errors = nil

	w, err := world.Decode(data)
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML unmarshaling: %w", name, err)
	}

	v.validateIDs(w)

	if err := w.Validate(); err != nil {
		var cerr *world.ConfigurationError
		if !errors.As(err, &cerr) {
			return err
		}
		for _, p := range cerr.Problems {
			v.addError(p)
		}
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", name, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *WorldValidator) validateIDs(w *world.World) {
	for _, id := range w.LocationIDs() {
		v.validateIDFormat("location ID", id)
	}
	for id := range w.Items {
		v.validateIDFormat("item ID", id)
	}
	for id := range w.Enemies {
		v.validateIDFormat("enemy ID", id)
	}
	for _, key := range w.ObjectiveKeys() {
		v.validateIDFormat("objective key", key)
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
