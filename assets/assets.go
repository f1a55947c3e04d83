// Package assets bundles the plugin's image resources.
package assets

import "embed"

// FS holds the bundled icons under icons/. Resource paths such as
// "/icons/ideavim.svg" map onto it with the leading slash removed.
//
//go:embed icons/*.svg
var FS embed.FS
