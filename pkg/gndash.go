// Package gndash holds build-time metadata of the GNdash application.
package gndash

var (
	// Version of GNdash, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
