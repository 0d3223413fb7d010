// provider.go defines the Provider interface and the Resolver that walks
// the fixed-priority provider chain.
package image

import (
	"fmt"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// Provider is one strategy for locating a container image reference in a
// project directory. Each provider understands a single configuration
// dialect (override file, devcontainer.json, CircleCI, Travis CI,
// GitHub Actions).
type Provider interface {
	// Name identifies the provider for diagnostic output (e.g. "circleci").
	Name() string

	// IsPresent reports whether the provider's config artifact exists in
	// the project directory. A false return is not an error — the chain
	// simply moves on to the next provider.
	IsPresent(projectDir string) (bool, error)

	// ImageName extracts the container image reference from the provider's
	// config artifact. It is only called after IsPresent returned true, and
	// must then either produce a complete image reference or fail with a
	// CLIError (malformed config, missing environment variable). It never
	// returns a partial result.
	ImageName(projectDir string) (string, error)
}

// Resolver holds the ordered provider chain and answers the single question
// this tool exists for: which container image should this project use?
type Resolver struct {
	providers []Provider
}

// NewResolver creates a Resolver with the default provider chain in its
// fixed priority order. The order is not configurable: the local override
// file must always win, and the CI dialect order is a deliberate design
// choice kept stable so resolution is reproducible.
func NewResolver() *Resolver {
	return &Resolver{
		providers: []Provider{
			NewOverrideProvider(),
			NewDevContainerProvider(),
			NewCircleCIProvider(),
			NewTravisProvider(),
			NewActionsProvider(),
		},
	}
}

// Resolve walks the provider chain for the given project directory and
// returns the first successful resolution.
//
// For each provider in order, IsPresent is consulted; on the first true,
// ImageName is called and its result is returned immediately — no further
// providers are tried, even if the resolved image later turns out to be
// unusable (validating that the image exists is the container runtime's
// job, not ours). Provider failures are terminal: a present-but-broken
// config aborts resolution rather than falling through.
//
// If no provider reports presence, Resolve fails with a CLIError carrying
// ExitNoProviderFound and the project directory path for diagnostics.
func (r *Resolver) Resolve(projectDir string) (model.Resolution, error) {
	for _, p := range r.providers {
		present, err := p.IsPresent(projectDir)
		if err != nil {
			return model.Resolution{}, err
		}
		if !present {
			continue
		}

		img, err := p.ImageName(projectDir)
		if err != nil {
			return model.Resolution{}, err
		}

		return model.Resolution{Image: img, Provider: p.Name()}, nil
	}

	return model.Resolution{}, model.NewCLIError(
		model.ExitNoProviderFound,
		fmt.Sprintf("no CI configuration with a container image found in %s (looked for .dev-container, devcontainer.json, .circleci/config.yml, .travis.yml, .github/workflows/)", projectDir),
	)
}

// Providers returns the chain in priority order. Exposed for diagnostic
// output ("which dialects does this tool understand?").
func (r *Resolver) Providers() []Provider {
	return r.providers
}
