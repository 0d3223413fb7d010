// run.go assembles and launches the interactive container session, and
// implements the --update image pull.
package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/docker/docker/api/types/image"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// containerWorkdir is where the project source tree is mounted inside the
// container.
const containerWorkdir = "/src"

// PullImage pulls the given image via the Docker SDK. The progress stream
// is drained to completion — the pull is not done until the reader is — and
// discarded, since the JSON progress messages are not terminal-friendly.
func PullImage(ctx context.Context, cli *Client, imageRef string) error {
	// Pull failures are general errors, not daemon errors: by the time a
	// pull runs the daemon has already answered a Ping, so what fails here
	// is the pull itself (unknown image, registry auth, network).
	reader, err := cli.Inner().ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to pull image %q", imageRef),
			err,
		)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("pull of image %q did not complete", imageRef),
			err,
		)
	}
	return nil
}

// BuildRunArgs assembles the argument list for the `docker run` invocation
// from the run options, the resolved image, and the display arguments.
//
// The assembled shape is:
//
//	run --rm -it -v <project>:/src -w /src [display args] [cap flags] <image> [command]
//
// The container is removed on exit (--rm) because a dev-container session
// is ephemeral by design: state worth keeping lives in the mounted source
// tree, not the container filesystem.
func BuildRunArgs(opts model.RunOptions, imageRef string, displayArgs []string) []string {
	args := []string{"run", "--rm", "-it"}

	// Mount the project source tree and start the session inside it.
	args = append(args, "-v", opts.ProjectDir+":"+containerWorkdir)
	args = append(args, "-w", containerWorkdir)

	args = append(args, displayArgs...)

	if opts.SysCaps {
		// Debuggers and build sandboxes need ptrace and mount privileges.
		args = append(args, "--cap-add=SYS_ADMIN", "--cap-add=SYS_PTRACE")
	}

	args = append(args, imageRef)
	args = append(args, opts.Command...)

	return args
}

// RunInteractive execs `docker run` with the given arguments as a blocking
// foreground child, handing the process's stdin/stdout/stderr over to the
// container session. From the CLI's perspective this is a terminal,
// non-resumable handoff: control returns only when the session ends.
//
// Returns the child's exit code so the CLI can propagate it, and an error
// only when the child could not be started at all.
func RunInteractive(ctx context.Context, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// A non-zero exit from the session (e.g. the user's shell exited 1)
		// is not a docker failure — propagate the code without wrapping.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to start docker run",
			err,
		)
	}

	return 0, nil
}
