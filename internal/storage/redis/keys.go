package redis

import "fmt"

// Key prefix for all profile data
const keyPrefix = "pdgame"

// storageKey returns the namespaced Redis key for a store key
func storageKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
