// Package types defines the core data structures for studio.
// It includes the provider tags, the four model descriptor shapes, the
// client and factory interfaces implemented by provider packages, and the
// configuration error type shared across the module.
package types
