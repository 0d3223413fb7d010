// Package display discovers the host's display server access (X11 and
// Wayland) and translates it into docker run arguments.
//
// Discovery is purely environment-driven: a socket is only shared with the
// container when the corresponding environment variable is set and the
// socket path actually exists on disk. A headless host yields no arguments,
// which is not an error — the session simply runs without a display.
package display

import (
	"os"
	"path/filepath"
)

// x11SocketDir is the directory holding X11 unix sockets on the host.
// A variable so tests can point it at a fixture directory.
var x11SocketDir = "/tmp/.X11-unix"

// Access describes the display server access discovered on the host.
type Access struct {
	// X11 reports whether an X11 display was found (DISPLAY set and the
	// socket directory present).
	X11 bool

	// Wayland reports whether a Wayland display was found (WAYLAND_DISPLAY
	// set and the compositor socket present under XDG_RUNTIME_DIR).
	Wayland bool

	// mounts and env accumulate the docker arguments for the discovered
	// displays.
	mounts []string
	env    []string
}

// Discover inspects the process environment and filesystem for X11 and
// Wayland access.
func Discover() *Access {
	a := &Access{}
	a.discoverX11()
	a.discoverWayland()
	return a
}

// discoverX11 checks for a usable X11 display. The socket directory is
// bind-mounted read-only; the Xauthority file, when present, is mounted so
// clients inside the container can authenticate.
func (a *Access) discoverX11() {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return
	}
	if _, err := os.Stat(x11SocketDir); err != nil {
		return
	}

	a.X11 = true
	a.mounts = append(a.mounts, "-v", x11SocketDir+":"+x11SocketDir+":ro")
	a.env = append(a.env, "-e", "DISPLAY="+display)

	// XAUTHORITY is optional: xhost-based setups work without it.
	if xauth := os.Getenv("XAUTHORITY"); xauth != "" {
		if _, err := os.Stat(xauth); err == nil {
			a.mounts = append(a.mounts, "-v", xauth+":"+xauth)
			a.env = append(a.env, "-e", "XAUTHORITY="+xauth)
		}
	}
}

// discoverWayland checks for a usable Wayland display. The compositor
// socket lives under XDG_RUNTIME_DIR and is mounted at the same path so
// WAYLAND_DISPLAY resolves identically inside the container.
func (a *Access) discoverWayland() {
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if waylandDisplay == "" || runtimeDir == "" {
		return
	}

	socket := filepath.Join(runtimeDir, waylandDisplay)
	if _, err := os.Stat(socket); err != nil {
		return
	}

	a.Wayland = true
	a.mounts = append(a.mounts, "-v", socket+":"+socket)
	a.env = append(a.env,
		"-e", "WAYLAND_DISPLAY="+waylandDisplay,
		"-e", "XDG_RUNTIME_DIR="+runtimeDir,
	)
}

// RunArgs returns the docker run arguments for all discovered displays:
// bind mounts first, then environment passthrough. Returns nil when no
// display was found.
func (a *Access) RunArgs() []string {
	if len(a.mounts) == 0 && len(a.env) == 0 {
		return nil
	}
	args := make([]string, 0, len(a.mounts)+len(a.env))
	args = append(args, a.mounts...)
	args = append(args, a.env...)
	return args
}
