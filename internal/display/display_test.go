package display

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearDisplayEnv unsets all display-related variables so tests start from
// a headless baseline. t.Setenv registers the restore; the explicit unset
// guarantees absence during the test body.
func clearDisplayEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"DISPLAY", "XAUTHORITY", "WAYLAND_DISPLAY", "XDG_RUNTIME_DIR"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// fakeX11SocketDir points the X11 socket directory at a fixture and
// restores the real path when the test ends.
func fakeX11SocketDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	orig := x11SocketDir
	x11SocketDir = dir
	t.Cleanup(func() { x11SocketDir = orig })
	return dir
}

// TestDiscover_Headless verifies that a host with no display produces no
// docker arguments and no error.
func TestDiscover_Headless(t *testing.T) {
	clearDisplayEnv(t)

	a := Discover()

	assert.False(t, a.X11)
	assert.False(t, a.Wayland)
	assert.Nil(t, a.RunArgs())
}

// TestDiscover_X11 verifies that a set DISPLAY with an existing socket
// directory yields a read-only socket mount and the DISPLAY passthrough.
func TestDiscover_X11(t *testing.T) {
	clearDisplayEnv(t)
	socketDir := fakeX11SocketDir(t)
	t.Setenv("DISPLAY", ":0")

	a := Discover()

	require.True(t, a.X11)
	args := a.RunArgs()
	assert.Contains(t, args, socketDir+":"+socketDir+":ro")
	assert.Contains(t, args, "DISPLAY=:0")
}

// TestDiscover_X11WithXauthority verifies that an existing Xauthority file
// is mounted and its variable passed through.
func TestDiscover_X11WithXauthority(t *testing.T) {
	clearDisplayEnv(t)
	fakeX11SocketDir(t)
	t.Setenv("DISPLAY", ":0")

	xauth := filepath.Join(t.TempDir(), ".Xauthority")
	require.NoError(t, os.WriteFile(xauth, []byte("cookie"), 0600))
	t.Setenv("XAUTHORITY", xauth)

	args := Discover().RunArgs()

	assert.Contains(t, args, xauth+":"+xauth)
	assert.Contains(t, args, "XAUTHORITY="+xauth)
}

// TestDiscover_X11MissingSocketDir verifies that DISPLAY alone is not
// enough — the socket directory must exist on disk.
func TestDiscover_X11MissingSocketDir(t *testing.T) {
	clearDisplayEnv(t)
	dir := fakeX11SocketDir(t)
	require.NoError(t, os.Remove(dir))
	t.Setenv("DISPLAY", ":0")

	a := Discover()

	assert.False(t, a.X11)
	assert.Nil(t, a.RunArgs())
}

// TestDiscover_Wayland verifies that a set WAYLAND_DISPLAY with an existing
// compositor socket yields the socket mount and both passthrough variables.
func TestDiscover_Wayland(t *testing.T) {
	clearDisplayEnv(t)

	runtimeDir := t.TempDir()
	socket := filepath.Join(runtimeDir, "wayland-0")
	require.NoError(t, os.WriteFile(socket, nil, 0600))

	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	a := Discover()

	require.True(t, a.Wayland)
	args := a.RunArgs()
	assert.Contains(t, args, socket+":"+socket)
	assert.Contains(t, args, "WAYLAND_DISPLAY=wayland-0")
	assert.Contains(t, args, "XDG_RUNTIME_DIR="+runtimeDir)
}

// TestDiscover_WaylandMissingSocket verifies that WAYLAND_DISPLAY without
// the socket on disk yields nothing.
func TestDiscover_WaylandMissingSocket(t *testing.T) {
	clearDisplayEnv(t)

	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	a := Discover()

	assert.False(t, a.Wayland)
	assert.Nil(t, a.RunArgs())
}

// TestDiscover_MountsPrecedeEnv verifies the argument layout: all bind
// mounts first, then the environment passthrough flags.
func TestDiscover_MountsPrecedeEnv(t *testing.T) {
	clearDisplayEnv(t)

	runtimeDir := t.TempDir()
	socket := filepath.Join(runtimeDir, "wayland-0")
	require.NoError(t, os.WriteFile(socket, nil, 0600))
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	args := Discover().RunArgs()

	require.Len(t, args, 6)
	assert.Equal(t, "-v", args[0])
	assert.Equal(t, "-e", args[2])
	assert.Equal(t, "-e", args[4])
}
