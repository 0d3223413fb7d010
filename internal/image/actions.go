// actions.go implements the GitHub Actions provider.
//
// Workflow files under .github/workflows/ declare jobs with a runner label
// and, optionally, a container to run the job in:
//
//	jobs:
//	  build:
//	    runs-on: ubuntu-latest
//	    container:
//	      image: fedora:40
//
// Only Linux-labelled runners are considered — a container declared for a
// Windows or macOS job would not be a usable interactive Linux environment.
// Jobs without a container, or on other runners, are skipped silently.
//
// Unlike the single-file providers, presence cannot be decided from a stat:
// the workflows directory may exist while no job anywhere in it qualifies.
// Presence-checking therefore shares a single memoized scan with resolution,
// so both see a consistent snapshot of the workflow files.
package image

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// workflowsDir is the fixed workflow directory relative to the project root.
var workflowsDir = filepath.Join(".github", "workflows")

// linuxRunners is the allow-list of runner labels whose jobs may contribute
// a container image.
var linuxRunners = map[string]bool{
	"ubuntu-latest": true,
	"ubuntu-24.04":  true,
	"ubuntu-22.04":  true,
	"ubuntu-20.04":  true,
}

// actionsWorkflow models the slice of a workflow file we read.
type actionsWorkflow struct {
	Jobs map[string]actionsJob `yaml:"jobs"`
}

// actionsJob is a single workflow job with its runner label(s) and
// optional container.
type actionsJob struct {
	RunsOn    runnerLabels  `yaml:"runs-on"`
	Container *jobContainer `yaml:"container"`
}

// runnerLabels normalizes the runs-on field, which may be a single string
// or a list of labels. Only the first label decides runner eligibility.
type runnerLabels struct {
	Labels []string
}

// UnmarshalYAML accepts both the scalar and the sequence form of runs-on.
func (r *runnerLabels) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		r.Labels = []string{s}
		return nil
	case yaml.SequenceNode:
		return node.Decode(&r.Labels)
	default:
		return fmt.Errorf("runs-on must be a string or a list of strings")
	}
}

// First returns the first runner label, or "" when none is declared.
func (r *runnerLabels) First() string {
	if len(r.Labels) == 0 {
		return ""
	}
	return r.Labels[0]
}

// jobContainer normalizes the container field, which may be a bare image
// string or a mapping with an image key.
type jobContainer struct {
	Image string
}

// UnmarshalYAML accepts both the scalar and the mapping form of container.
func (c *jobContainer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Image)
	case yaml.MappingNode:
		var m struct {
			Image string `yaml:"image"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		c.Image = m.Image
		return nil
	default:
		return fmt.Errorf("container must be a string or a mapping")
	}
}

// ActionsProvider resolves the image from GitHub Actions workflow files.
// The first qualifying job across all files determines the result.
//
// Directory listings and YAML mappings are both unordered, so the scan is
// made deterministic by sorting: workflow files by name, jobs within a file
// by key.
type ActionsProvider struct {
	scannedDir string
	image      string
	found      bool
	scanErr    error
}

// NewActionsProvider creates the GitHub Actions provider.
func NewActionsProvider() *ActionsProvider {
	return &ActionsProvider{}
}

// Name identifies this provider in diagnostic output.
func (p *ActionsProvider) Name() string {
	return "github-actions"
}

// IsPresent reports whether any workflow job qualifies. This requires the
// full scan: an existing workflows directory with no qualifying job is
// still "not present", so the chain can report NoProviderFound cleanly.
func (p *ActionsProvider) IsPresent(projectDir string) (bool, error) {
	p.scan(projectDir)
	return p.found, p.scanErr
}

// ImageName returns the container image from the memoized scan.
func (p *ActionsProvider) ImageName(projectDir string) (string, error) {
	p.scan(projectDir)
	if p.scanErr != nil {
		return "", p.scanErr
	}
	if !p.found {
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("no workflow job with a Linux runner and a container image in %s", projectDir),
		)
	}
	return p.image, nil
}

// scan walks every workflow file once and records the first qualifying
// job's container image. The result is memoized per project directory so
// IsPresent and ImageName within one resolution pass never re-read files.
func (p *ActionsProvider) scan(projectDir string) {
	if p.scannedDir == projectDir {
		return
	}
	p.scannedDir = projectDir
	p.image = ""
	p.found = false
	p.scanErr = nil

	dir := filepath.Join(projectDir, workflowsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// No workflows directory — provider not present.
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			p.scanErr = model.WrapCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("failed to read %s", path),
				err,
			)
			return
		}

		var wf actionsWorkflow
		if err := yaml.Unmarshal(data, &wf); err != nil {
			p.scanErr = model.WrapCLIError(
				model.ExitMalformedConfig,
				fmt.Sprintf("failed to parse %s", path),
				err,
			)
			return
		}

		// Deterministic job order within the file.
		jobNames := make([]string, 0, len(wf.Jobs))
		for jobName := range wf.Jobs {
			jobNames = append(jobNames, jobName)
		}
		sort.Strings(jobNames)

		for _, jobName := range jobNames {
			job := wf.Jobs[jobName]
			if !linuxRunners[job.RunsOn.First()] {
				continue
			}
			if job.Container == nil || job.Container.Image == "" {
				continue
			}
			p.image = job.Container.Image
			p.found = true
			return
		}
	}
}
