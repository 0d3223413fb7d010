package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOverrideProvider_ReturnsTrimmedContents verifies that the override
// file's contents are returned with only the trailing newline stripped.
func TestOverrideProvider_ReturnsTrimmedContents(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".dev-container", "registry.example.com/tools/dev:latest\n")

	p := NewOverrideProvider()

	present, err := p.IsPresent(dir)
	require.NoError(t, err)
	require.True(t, present)

	img, err := p.ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "registry.example.com/tools/dev:latest", img)
}

// TestOverrideProvider_NoSubstitution verifies that the override file is a
// literal: a $VAR token in it is NOT substituted against the environment.
func TestOverrideProvider_NoSubstitution(t *testing.T) {
	t.Setenv("TAG", "v9")

	dir := t.TempDir()
	writeProjectFile(t, dir, ".dev-container", "myrepo:$TAG\n")

	img, err := NewOverrideProvider().ImageName(dir)
	require.NoError(t, err)
	assert.Equal(t, "myrepo:$TAG", img)
}

// TestOverrideProvider_Absent verifies that a project without the override
// file reports not-present.
func TestOverrideProvider_Absent(t *testing.T) {
	present, err := NewOverrideProvider().IsPresent(t.TempDir())
	require.NoError(t, err)
	assert.False(t, present)
}
