package embedded

import (
	"embed"
)

// FS embeds the reference catalog so a fresh install can seed itself.
//
//go:embed catalog/*.yaml
var FS embed.FS

// ReferencePath is the location of the reference catalog inside FS.
const ReferencePath = "catalog/reference.yaml"
