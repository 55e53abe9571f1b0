package detect

import "errors"

// Image-pipeline-specific error kinds (§7). Shared metadata-decode errors
// (format/version BCH, RS correction, segment parsing) live in package
// qrcodegen since its own decode helpers return them and this package
// reports them too; detect re-exports nothing, callers import qrcodegen
// directly for those.
var (
	// ErrNoFinders means fewer than three confirmed finder-pattern centers
	// were found anywhere in the image.
	ErrNoFinders = errors.New("detect: no finder patterns found")

	// ErrGeometryAmbiguous means finder centers were found but no triplet
	// passed the isoceles-right-triangle test.
	ErrGeometryAmbiguous = errors.New("detect: finder geometry ambiguous")
)
