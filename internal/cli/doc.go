// Package cli parses command-line arguments into an app.Config. It owns the
// usage text and the exit-code contract of the binary and nothing else.
package cli
