// Package errors provides the structured error type shared by every gojoin
// package. Each failure carries a machine-readable code, a one-line message
// suitable for a terminal diagnostic, and the process exit status it maps to.
package errors
