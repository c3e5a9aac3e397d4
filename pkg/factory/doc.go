// Package factory dispatches model descriptors to the client factory
// registered for their provider tag. The dispatch table is built once and is
// read-only afterwards, so it is safe for concurrent use without locks.
package factory
