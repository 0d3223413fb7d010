// override.go implements the highest-priority provider: a developer-local
// override file that names the image directly.
package image

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// overrideFileName is the fixed name of the override file at the project root.
const overrideFileName = ".dev-container"

// OverrideProvider reads the image reference from a plain-text override file
// at the project root. The file's entire contents (minus trailing newline)
// are taken as the image reference verbatim: no parsing, no environment
// substitution, no shape validation. The developer asked for exactly this
// image, so exactly this image is what the runtime gets.
type OverrideProvider struct{}

// NewOverrideProvider creates the override-file provider.
func NewOverrideProvider() *OverrideProvider {
	return &OverrideProvider{}
}

// Name identifies this provider in diagnostic output.
func (p *OverrideProvider) Name() string {
	return "dev-container"
}

// IsPresent reports whether the override file exists at the project root.
func (p *OverrideProvider) IsPresent(projectDir string) (bool, error) {
	_, err := os.Stat(filepath.Join(projectDir, overrideFileName))
	if err != nil {
		// Both "not found" and other stat failures mean the override is
		// unusable; the chain moves on to the CI providers.
		return false, nil
	}
	return true, nil
}

// ImageName returns the override file's contents with the trailing newline
// stripped.
func (p *OverrideProvider) ImageName(projectDir string) (string, error) {
	path := filepath.Join(projectDir, overrideFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}

	// Strip the trailing newline an editor leaves behind. Interior
	// whitespace is preserved as-is — the file is a literal.
	return strings.TrimRight(string(data), "\n"), nil
}
