// circleci.go implements the CircleCI provider.
//
// CircleCI declares per-job docker executors in .circleci/config.yml:
//
//	jobs:
//	  build:
//	    docker:
//	      - image: cimg/go:1.22
//
// The first image of the selected job is the one the developer's build runs
// in, which makes it the best guess for an interactive session too.
package image

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// circleConfigPath is the fixed config location relative to the project root.
var circleConfigPath = filepath.Join(".circleci", "config.yml")

// circleConfig models the slice of the CircleCI config we read.
// Unknown fields are ignored by the YAML decoder.
type circleConfig struct {
	Jobs map[string]circleJob `yaml:"jobs"`
}

// circleJob is a single job entry with its docker executor list.
type circleJob struct {
	Docker []circleDockerImage `yaml:"docker"`
}

// circleDockerImage is one entry of a job's docker executor list.
type circleDockerImage struct {
	Image string `yaml:"image"`
}

// CircleCIProvider resolves the image from a .circleci/config.yml file.
type CircleCIProvider struct{}

// NewCircleCIProvider creates the CircleCI provider.
func NewCircleCIProvider() *CircleCIProvider {
	return &CircleCIProvider{}
}

// Name identifies this provider in diagnostic output.
func (p *CircleCIProvider) Name() string {
	return "circleci"
}

// IsPresent reports whether the CircleCI config file exists.
func (p *CircleCIProvider) IsPresent(projectDir string) (bool, error) {
	_, err := os.Stat(filepath.Join(projectDir, circleConfigPath))
	return err == nil, nil
}

// ImageName parses the config and returns the first docker image of the
// first job.
//
// YAML mappings decode into Go maps, which do not preserve source order, so
// "first job" is made deterministic by selecting the lexicographically
// smallest job name. Configs with a single job (the overwhelmingly common
// case) are unaffected.
//
// Fails with a malformed-config error if the jobs mapping is absent or the
// selected job declares no docker image.
func (p *CircleCIProvider) ImageName(projectDir string) (string, error) {
	path := filepath.Join(projectDir, circleConfigPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}

	var cfg circleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", model.WrapCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("failed to parse %s", path),
			err,
		)
	}

	if len(cfg.Jobs) == 0 {
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("%s has no jobs section", path),
		)
	}

	// Deterministic job selection: lexicographically smallest name.
	names := make([]string, 0, len(cfg.Jobs))
	for name := range cfg.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	job := cfg.Jobs[names[0]]
	if len(job.Docker) == 0 || job.Docker[0].Image == "" {
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("job %q in %s declares no docker image", names[0], path),
		)
	}

	return job.Docker[0].Image, nil
}
