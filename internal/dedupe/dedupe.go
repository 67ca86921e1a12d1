package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent loads of the same data into a single call while the other
// callers wait for its result.

import "golang.org/x/sync/singleflight"

// CatalogGroup deduplicates catalog loads from the repository, keyed by
// "catalog".
var CatalogGroup singleflight.Group

// RecordGroup deduplicates writes of a finished match record keyed by the
// match id.
var RecordGroup singleflight.Group
