// Package darwin provides macOS input synthesis, display capture and
// permission checks using CoreGraphics and the Accessibility APIs.
// All functionality requires cgo; without it the package is empty and
// platform.NewProvider reports ErrUnsupported.
//
// None of the types here are safe for concurrent use, and all of them
// must be called on the main thread via internal/affinity.
package darwin
