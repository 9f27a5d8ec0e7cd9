// Package filesystem provides the OS-backed implementation of types.FS.
// Operations take the interface so tests can substitute their own
// filesystem without touching the real one.
package filesystem
