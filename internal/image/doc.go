// Package image contains the logic for selecting the container image to use
// for a project directory.
//
// The selection is implemented as a chain of providers, each understanding
// one configuration dialect:
//
//  1. dev-container override file (.dev-container)
//  2. devcontainer.json (.devcontainer/devcontainer.json or .devcontainer.json)
//  3. CircleCI (.circleci/config.yml)
//  4. Travis CI (.travis.yml)
//  5. GitHub Actions (.github/workflows/)
//
// The chain order is fixed: a developer-local override always wins over any
// committed CI configuration. Among the CI dialects the order carries no
// semantic priority — it mirrors adoption frequency, nothing more.
//
// A provider that finds its config artifact but cannot extract an image from
// it fails the whole resolution (exit code 3). A broken CI file is surfaced
// to the developer rather than silently skipped in favour of a fallback that
// would obscure the real problem.
package image
