package ports

import (
	"context"

	"wagontrail/internal/domain/trail"
)

// CatalogProvider loads the immutable data tables. Load must be
// memoized: at most one underlying fetch per process lifetime, with
// concurrent first calls sharing a single in-flight load. A failed
// load degrades to the built-in default tables rather than erroring.
type CatalogProvider interface {
	Load(ctx context.Context) (trail.Catalogs, error)
	// Landmarks returns the authored route landmarks, hazards included.
	Landmarks(ctx context.Context) ([]trail.Landmark, error)
}
