// Package registry provides a generic, type-safe registry mapping stable
// string keys to items. Registries are plain values built at startup through
// explicit Register calls; nothing registers itself on import.
package registry
