// run.go implements the root command's behavior: resolve the image, build
// the docker run invocation, and hand the terminal over to the session.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelhollerbach/dev-container/internal/display"
	"github.com/marcelhollerbach/dev-container/internal/docker"
	"github.com/marcelhollerbach/dev-container/internal/image"
	"github.com/marcelhollerbach/dev-container/internal/model"
)

// runSession is the main logic of the root command.
//
// Step order matters: the image is resolved before Docker is touched so
// that a broken CI config fails fast with its own exit code, and the
// daemon ping happens before the (possibly slow) pull.
func runSession(ctx context.Context, opts model.RunOptions) error {
	// Step 1: Determine the image, either from the positional override or
	// from the provider chain.
	imageRef := opts.ImageOverride
	if imageRef != "" {
		VerboseLog("Using image %q from the command line", imageRef)
	} else {
		res, err := image.NewResolver().Resolve(opts.ProjectDir)
		if err != nil {
			return err
		}
		imageRef = res.Image
		VerboseLog("Resolved image %q via %s", res.Image, res.Provider)
	}

	// Step 2: Connect to the Docker daemon and verify it responds.
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}

	if err := cli.Ping(ctx); err != nil {
		_ = cli.Close()
		return err
	}
	VerboseLog("Connected to Docker daemon")

	// Step 3: Optionally pull the image before starting.
	if opts.Update {
		fmt.Fprintf(os.Stderr, "Pulling %s...\n", imageRef)
		if err := docker.PullImage(ctx, cli, imageRef); err != nil {
			_ = cli.Close()
			return err
		}
	}

	// The SDK client is not needed past this point — the session itself
	// goes through the docker CLI. Close it before the handoff, because
	// the process may exit directly with the session's code.
	_ = cli.Close()

	// Step 4: Discover display access and assemble the invocation.
	access := display.Discover()
	VerboseLog("Display access: x11=%v wayland=%v", access.X11, access.Wayland)

	args := docker.BuildRunArgs(opts, imageRef, access.RunArgs())

	// Step 5: Hand the terminal over to the container session. This call
	// blocks until the session ends; its exit code becomes ours.
	code, err := docker.RunInteractive(ctx, args)
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
