// Package source binds input designators to lazy line sequences.
//
// A source is a pipeline.Iterator[string] yielding one raw line per Next call
// with the line terminator removed. "-" binds standard input; any other name
// is opened as a file and closed when the iterator is closed.
package source
