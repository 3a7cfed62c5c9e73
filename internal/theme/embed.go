// Package theme provides embedded colour themes and utilities for loading them.
package theme

import "embed"

// themeFS embeds all JSON theme files from this directory at build time.
//
//go:embed *.json
var themeFS embed.FS
