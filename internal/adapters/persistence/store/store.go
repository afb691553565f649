package store

import "errors"

// State keys. Every logical record the application persists lives under one
// of these.
const (
	KeyItems   = "items"
	KeyLoans   = "loans"
	KeyUsers   = "users"
	KeySession = "session"
	KeyConfig  = "config"
	KeyHistory = "history"
)

// ErrKeyNotFound is returned by Load when no value has been saved yet.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is the key-value persistence contract. Values are JSON-serializable
// documents; implementations must make Save durable before returning.
type Store interface {
	// Load unmarshals the value saved under key into v. Returns
	// ErrKeyNotFound when the key has never been saved.
	Load(key string, v any) error
	// Save marshals v and durably persists it under key.
	Save(key string, v any) error
}
