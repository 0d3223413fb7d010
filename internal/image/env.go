// env.go implements placeholder substitution for parameterized image
// references. CI configs frequently write `docker pull repo:$TAG` and rely
// on the environment to supply the tag.
package image

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// substituteEnv resolves a single image-reference segment against the
// process environment.
//
// A segment is treated as a variable reference only when it begins with
// "$"; the remainder of the segment is then the variable name. Segments
// without the prefix pass through verbatim, even if they contain a "$"
// somewhere in the middle.
//
// Substitution is all-or-nothing: an unset variable fails resolution with
// a CLIError naming the variable, so a partially-substituted reference can
// never reach the container runtime.
func substituteEnv(segment string) (string, error) {
	if !strings.HasPrefix(segment, "$") {
		return segment, nil
	}

	name := segment[1:]
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", model.NewCLIError(
			model.ExitMissingEnvVariable,
			fmt.Sprintf("environment variable %s is referenced by the CI config but not set", name),
		)
	}
	return value, nil
}
