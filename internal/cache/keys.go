package cache

import "strings"

const (
	GlobalKeyPrefix = "neolingo"

	// Object types for per-user rendered views. These are the keys the
	// attempt processor invalidates after a committed submission.
	ViewCuratorTest = "curator_test"
	ViewProfile     = "profile"
	ViewHome        = "home"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ViewKey builds the cache key for a user-scoped rendered view.
func ViewKey(view, userID string) string {
	return GenerateCacheKey("views", view, userID)
}

// DictionaryKey builds the cache key for the language-scoped word list.
func DictionaryKey(languageID string) string {
	return GenerateCacheKey("dictionary", "words", languageID)
}
