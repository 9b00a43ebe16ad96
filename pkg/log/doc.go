// Package log defines the structured logging interface used by udpsend's
// library packages, with a zerolog-backed adapter for real output and a
// no-op adapter for tests and silent use.
package log
