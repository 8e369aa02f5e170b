// Package util provides small shared helpers: string sanitization,
// secret masking, and pointer utilities.
package util
