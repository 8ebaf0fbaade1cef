// Package version reports the build version of gojoin.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gojoin/version.Version=1.0.0"
//
// Unset values fall back to the module and VCS data recorded by the Go
// toolchain.
package version
