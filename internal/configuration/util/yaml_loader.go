package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadAndExpandYaml reads <baseDir>/<filename>.yml and expands its ${VAR} references.
func LoadAndExpandYaml(baseDir, filename string) (string, error) {
	file := filepath.Join(baseDir, filename+".yml")

	raw, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s.yml not found in %s", filename, baseDir)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}

	expanded, err := ExpandEnvStrict(string(raw))
	if err != nil {
		return "", fmt.Errorf("%s.yml: %w", filename, err)
	}

	return expanded, nil
}
