package image

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// TestActionsProvider_SkipsNonLinuxJobs verifies the spec scenario: a
// workflow with a Windows job (no container) and an Ubuntu job with a
// container resolves to the Ubuntu job's image, skipping the Windows job
// without error.
func TestActionsProvider_SkipsNonLinuxJobs(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `name: CI
jobs:
  package:
    runs-on: windows-latest
    steps:
      - uses: actions/checkout@v4
  test:
    runs-on: ubuntu-latest
    container:
      image: "baz:qux"
    steps:
      - uses: actions/checkout@v4
`)

	p := NewActionsProvider()

	present, err := p.IsPresent(dir)
	require.NoError(t, err)
	require.True(t, present)

	img, err := p.ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "baz:qux", img)
}

// TestActionsProvider_ScalarContainerForm verifies the shorthand
// `container: image` form.
func TestActionsProvider_ScalarContainerForm(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: ubuntu-22.04
    container: node:20
`)

	img, err := NewActionsProvider().ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "node:20", img)
}

// TestActionsProvider_ListRunsOn verifies that only the FIRST runs-on
// entry decides eligibility, matching the allow-list semantics.
func TestActionsProvider_ListRunsOn(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: [ubuntu-latest, self-hosted]
    container:
      image: golang:1.22
`)

	img, err := NewActionsProvider().ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "golang:1.22", img)
}

// TestActionsProvider_NonLinuxFirstLabel verifies that a job whose first
// runs-on entry is off the allow-list is skipped even if a later entry
// would qualify.
func TestActionsProvider_NonLinuxFirstLabel(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: [self-hosted, ubuntu-latest]
    container:
      image: golang:1.22
`)

	present, err := NewActionsProvider().IsPresent(dir)
	require.NoError(t, err)
	assert.False(t, present)
}

// TestActionsProvider_ContainerlessJobsNotPresent verifies that an existing
// workflows directory whose jobs declare no containers reports not-present:
// presence requires a full scan, not a directory stat.
func TestActionsProvider_ContainerlessJobsNotPresent(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
`)

	present, err := NewActionsProvider().IsPresent(dir)
	require.NoError(t, err)
	assert.False(t, present)
}

// TestActionsProvider_DeterministicAcrossFiles verifies that workflow files
// are scanned in sorted filename order, so the same file wins every time.
func TestActionsProvider_DeterministicAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/release.yml", `jobs:
  release:
    runs-on: ubuntu-latest
    container:
      image: from-release:1
`)
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: ubuntu-latest
    container:
      image: from-ci:1
`)

	// "ci.yml" sorts before "release.yml".
	for i := 0; i < 5; i++ {
		img, err := NewActionsProvider().ImageName(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-ci:1", img)
	}
}

// TestActionsProvider_DeterministicWithinFile verifies that jobs within a
// file are considered in sorted key order.
func TestActionsProvider_DeterministicWithinFile(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  zeta:
    runs-on: ubuntu-latest
    container:
      image: from-zeta:1
  alpha:
    runs-on: ubuntu-latest
    container:
      image: from-alpha:1
`)

	img, err := NewActionsProvider().ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-alpha:1", img)
}

// TestActionsProvider_MalformedWorkflow verifies that an unparseable
// workflow file is a fatal malformed-config error.
func TestActionsProvider_MalformedWorkflow(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", "jobs: [unclosed\n")

	_, err := NewActionsProvider().IsPresent(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitMalformedConfig, cliErr.Code)
}

// TestActionsProvider_MemoizedScan verifies that presence-check and
// resolution share one scan: both calls on the same provider instance see
// the same snapshot and agree on the result.
func TestActionsProvider_MemoizedScan(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: ubuntu-latest
    container:
      image: snapshot:1
`)

	p := NewActionsProvider()

	present, err := p.IsPresent(dir)
	require.NoError(t, err)
	require.True(t, present)

	// Rewrite the workflow between the two calls. The memoized scan must
	// still serve the original snapshot within this resolution pass.
	writeProjectFile(t, dir, ".github/workflows/ci.yml", `jobs:
  build:
    runs-on: ubuntu-latest
    container:
      image: snapshot:2
`)

	img, err := p.ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "snapshot:1", img)
}

// TestActionsProvider_NoWorkflowsDir verifies not-present when the
// workflows directory does not exist.
func TestActionsProvider_NoWorkflowsDir(t *testing.T) {
	present, err := NewActionsProvider().IsPresent(t.TempDir())
	require.NoError(t, err)
	assert.False(t, present)
}
