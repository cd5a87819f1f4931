// Package app wires the codecreg application together: it builds the
// logger, constructs the lifecycle controller from the parsed
// configuration, acquires the codec context, and renders the discovered
// registry.
package app
