// Package cache provides translation caching implementations.
//
// Caches store machine translations keyed by source-text hash and target
// language, so repeated merge passes over a mod never pay twice for the
// same string. The in-memory LRU serves single runs; Redis persists the
// cache across runs and shares it between machines.
package cache

import "github.com/RimLocale/rimloc"

// ExportableCache is a cache whose full contents can be enumerated, which
// the JSON exporter needs.
type ExportableCache interface {
	rimloc.TranslationCache

	// Keys returns all live keys in the cache.
	Keys() []string
}
