// Package cli wires the inso command tree: the built-in commands
// (generate, run, lint, export, version, and the dev-only debug
// branch), the shared global flags, script dispatch for unmatched
// first arguments, and the mapping from handler errors to process
// exit codes.
package cli
