// Package util provides small parsing helpers shared by the configuration
// packages.
package util
