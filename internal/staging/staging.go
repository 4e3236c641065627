// Package staging owns the on-disk staging area: writing decrypted
// artifacts under random names, resolving them back by name, and reaping
// them by age.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Write stores data as a new staged file named <uuid><ext> and returns the
// name. The file is private to the service user.
func Write(dir, ext string, data []byte) (string, error) {
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	return name, nil
}

// Resolve validates a caller-supplied staged name and returns its path
// inside dir. Only names produced by Write pass: a uuid, a dot, and an
// extension, with no path separators. Anything else is rejected, so a name
// can never escape the staging directory.
func Resolve(dir, name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid staged name %q", name)
	}
	ext := filepath.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("invalid staged name %q", name)
	}
	if _, err := uuid.Parse(strings.TrimSuffix(name, ext)); err != nil {
		return "", fmt.Errorf("invalid staged name %q", name)
	}
	return filepath.Join(dir, name), nil
}
