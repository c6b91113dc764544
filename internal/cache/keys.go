package cache

import "time"

// KeyCatalog holds the full article listing; it is dropped whenever an
// article or any stock figure changes.
const KeyCatalog = "catalog:articles"

const CatalogTTL = 5 * time.Minute
