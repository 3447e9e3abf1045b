// Package ui embeds the overlay and settings pages.
package ui

import "embed"

// DistFS holds dist/index.html (the transparent overlay) and
// dist/settings.html.
//
//go:embed dist
var DistFS embed.FS
