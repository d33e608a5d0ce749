// Package kvstore abstracts the console's persisted key-value state,
// the Go equivalent of the browser local storage the back office relies
// on for its session keys.
//
// Three drivers share one tiny synchronous contract:
//
//	file    JSON document on disk, shared by every command invocation
//	redis   shared store for multi-host operator setups
//	memory  in-process fake for tests
//
// Values are plain strings; absence is reported, never an error.
package kvstore

import (
	"fmt"

	"github.com/shashiranjanraj/vyapar/config"
)

// Store is a synchronous string key-value store. There is no transactional
// guarantee across keys; callers that need multi-key consistency write the
// keys in an order whose partial states stay safe.
type Store interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (string, bool)
	// Set writes key. Overwrites silently.
	Set(key, value string) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(key string) error
}

// Open builds the Store selected by STORE_DRIVER.
func Open() (Store, error) {
	switch config.StoreDriver() {
	case "redis":
		return OpenRedis(config.RedisAddr(), config.RedisPassword())
	case "memory":
		return NewMemory(), nil
	default:
		return OpenFile(config.StorePath(), config.SessionKey())
	}
}

// MustOpen is Open for CLI wiring paths where a broken store is fatal anyway.
func MustOpen() Store {
	s, err := Open()
	if err != nil {
		panic(fmt.Sprintf("kvstore: %v", err))
	}
	return s
}
