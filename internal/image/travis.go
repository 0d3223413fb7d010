// travis.go implements the Travis CI provider.
//
// Travis has no first-class container-image field; projects that use docker
// pull an image inside a script step:
//
//	services:
//	  - docker
//	before_install:
//	  - docker pull myregistry/myrepo:$TAG
//
// The image reference lives inside an opaque shell command, so this provider
// scans the raw file text for the first `docker pull` line and parses the
// reference out of it. Each of the three segments (registry, repo, tag) may
// be an environment-variable placeholder.
package image

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// travisConfigName is the fixed config file name at the project root.
const travisConfigName = ".travis.yml"

// pullPattern matches `docker pull registry[/repo][:tag]`. Each segment is
// word characters, hyphens, and dollar signs; the repo and tag groups are
// captured together with their separator character so reassembly preserves
// the exact separators the config used.
var pullPattern = regexp.MustCompile(`docker pull ([\w$-]+)(/[\w$-]+)?(:[\w$-]+)?`)

// pullFragment is the structured result of parsing a `docker pull` line:
// the three image-reference segments before substitution. Repo and Tag
// retain their leading separator ("/" and ":") and are empty when the
// reference omits that part.
type pullFragment struct {
	Registry string
	Repo     string
	Tag      string
}

// parsePullLine finds the first `docker pull` reference in the given config
// text and returns it as a structured fragment. The second return value
// reports whether a reference was found at all.
func parsePullLine(text string) (pullFragment, bool) {
	m := pullPattern.FindStringSubmatch(text)
	if m == nil {
		return pullFragment{}, false
	}
	return pullFragment{Registry: m[1], Repo: m[2], Tag: m[3]}, true
}

// resolve assembles the fragment into a complete image reference,
// substituting environment variables where a segment is a $NAME placeholder.
//
// The registry segment is substituted bare. The repo and tag segments are
// substituted with their separator stripped, then reassembled as
// separator + value, so "/$REPO" with REPO=app becomes "/app" and ":$TAG"
// with TAG=v1 becomes ":v1".
func (f pullFragment) resolve() (string, error) {
	registry, err := substituteEnv(f.Registry)
	if err != nil {
		return "", err
	}

	ref := registry
	for _, part := range []string{f.Repo, f.Tag} {
		if part == "" {
			continue
		}
		// part[:1] is the separator ("/" or ":"), the rest is the value.
		value, err := substituteEnv(part[1:])
		if err != nil {
			return "", err
		}
		ref += part[:1] + value
	}

	return ref, nil
}

// TravisProvider resolves the image from the first `docker pull` line of a
// .travis.yml file.
type TravisProvider struct{}

// NewTravisProvider creates the Travis CI provider.
func NewTravisProvider() *TravisProvider {
	return &TravisProvider{}
}

// Name identifies this provider in diagnostic output.
func (p *TravisProvider) Name() string {
	return "travis-ci"
}

// IsPresent reports whether .travis.yml exists AND contains a `docker pull`
// reference. A Travis config that never pulls an image has nothing to offer,
// so the chain is free to consult the remaining providers.
func (p *TravisProvider) IsPresent(projectDir string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, travisConfigName))
	if err != nil {
		return false, nil
	}
	_, found := parsePullLine(string(data))
	return found, nil
}

// ImageName parses the first `docker pull` line and resolves any
// environment-variable placeholders in it. An unset placeholder variable
// fails resolution with a missing-environment-variable error that names
// the variable.
func (p *TravisProvider) ImageName(projectDir string) (string, error) {
	path := filepath.Join(projectDir, travisConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}

	fragment, found := parsePullLine(string(data))
	if !found {
		// IsPresent guarantees a match within one resolution pass; reaching
		// this branch means the file changed between the two reads.
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("%s no longer contains a docker pull line", path),
		)
	}

	ref, err := fragment.resolve()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(ref) == "" {
		return "", model.NewCLIError(
			model.ExitMalformedConfig,
			fmt.Sprintf("docker pull line in %s resolves to an empty image reference", path),
		)
	}
	return ref, nil
}
