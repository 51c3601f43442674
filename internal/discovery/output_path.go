package discovery

import (
	"path/filepath"
	"strings"
)

// OutputPath mirrors inputPath under outputRoot with its last extension removed.
//
// Absolute inputs are re-rooted under outputRoot and parent references are
// dropped, so the result never escapes outputRoot.
func OutputPath(outputRoot, inputPath string) string {
	rel := filepath.Clean(inputPath)
	rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
	rel = strings.TrimLeft(rel, `/\`)

	parts := strings.Split(filepath.ToSlash(rel), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == ".." || p == "." || p == "" {
			continue
		}
		kept = append(kept, p)
	}
	rel = filepath.Join(kept...)

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	return filepath.Join(outputRoot, rel)
}
