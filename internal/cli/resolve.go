// resolve.go implements the "dev-container resolve" command.
//
// The resolve command runs the provider chain and prints the image it
// settles on, plus which provider supplied it, without touching Docker.
// Useful for debugging why the tool picks a particular image.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcelhollerbach/dev-container/internal/image"
	"github.com/marcelhollerbach/dev-container/internal/model"
)

// NewResolveCommand creates the "resolve" cobra command.
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Print the container image the project's CI config resolves to",
		Long: `Resolve the container image for a project directory without starting
a session. Prints the image reference and the provider that supplied it.

Examples:
  dev-container resolve
  dev-container resolve ~/src/myproject
  dev-container resolve --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := ""
			if len(args) == 1 {
				projectDir = args[0]
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return model.WrapCLIError(
						model.ExitGeneralError, "failed to determine working directory", err)
				}
				projectDir = wd
			}
			return runResolve(projectDir)
		},
	}

	return cmd
}

// runResolve walks the provider chain and prints the result.
func runResolve(projectDir string) error {
	res, err := image.NewResolver().Resolve(projectDir)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return model.WrapCLIError(
				model.ExitGeneralError, "failed to marshal resolution", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s (via %s)\n", res.Image, res.Provider)
	return nil
}
