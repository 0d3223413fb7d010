// devcontainer.go implements the devcontainer.json provider.
//
// The devcontainer.json specification supports JSONC (JSON with Comments),
// so this provider uses github.com/tidwall/jsonc to strip comments before
// parsing with the standard encoding/json library.
//
// Only image-based configurations are handled: a devcontainer.json that uses
// a Dockerfile build or Docker Compose does not name a pullable image, so the
// provider reports itself as not present and lets the CI providers have a go.
package image

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// rawDevContainer captures the one devcontainer.json field this provider
// cares about. encoding/json silently ignores everything else — including
// the build and dockerComposeFile fields whose presence is implied by an
// empty image.
type rawDevContainer struct {
	// Image is the pre-built container image, when the config uses one.
	// Empty for Dockerfile-build and Compose patterns.
	Image string `json:"image,omitempty"`
}

// DevContainerProvider resolves the image from a devcontainer.json file.
// Presence requires the file to exist, parse, and declare a non-empty
// "image" field; build/compose-pattern files are skipped without error.
//
// The scan result is memoized so that IsPresent and ImageName see a
// consistent snapshot of the file within one resolution pass.
type DevContainerProvider struct {
	scannedDir string
	image      string
	found      bool
	scanErr    error
}

// NewDevContainerProvider creates the devcontainer.json provider.
func NewDevContainerProvider() *DevContainerProvider {
	return &DevContainerProvider{}
}

// Name identifies this provider in diagnostic output.
func (p *DevContainerProvider) Name() string {
	return "devcontainer"
}

// IsPresent reports whether a devcontainer.json with an image field exists.
func (p *DevContainerProvider) IsPresent(projectDir string) (bool, error) {
	p.scan(projectDir)
	return p.found, p.scanErr
}

// ImageName returns the image field from the memoized scan.
func (p *DevContainerProvider) ImageName(projectDir string) (string, error) {
	p.scan(projectDir)
	if p.scanErr != nil {
		return "", p.scanErr
	}
	if !p.found {
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("no devcontainer.json with an image field in %s", projectDir),
		)
	}
	return p.image, nil
}

// scan locates and parses the devcontainer.json once per project directory.
// Candidate locations follow the devcontainer spec's search order:
//
//  1. <projectDir>/.devcontainer/devcontainer.json (standard location)
//  2. <projectDir>/.devcontainer.json (root-level alternative)
func (p *DevContainerProvider) scan(projectDir string) {
	if p.scannedDir == projectDir {
		return
	}
	p.scannedDir = projectDir
	p.image = ""
	p.found = false
	p.scanErr = nil

	candidates := []string{
		filepath.Join(projectDir, ".devcontainer", "devcontainer.json"),
		filepath.Join(projectDir, ".devcontainer.json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			// Missing candidate — try the next location.
			continue
		}

		// Strip JSONC comments (// and /* */) and trailing commas before
		// parsing. Real-world devcontainer.json files are full of comments.
		var raw rawDevContainer
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			// The file exists but is not valid JSON(C). That is a broken
			// config the developer should fix, not a reason to fall back.
			p.scanErr = model.WrapCLIError(
				model.ExitMalformedConfig,
				fmt.Sprintf("failed to parse %s", path),
				err,
			)
			return
		}

		if raw.Image != "" {
			p.image = raw.Image
			p.found = true
			return
		}

		// Build or Compose pattern: this file has no image reference to
		// pull, but the other candidate location may still name one.
	}
}
