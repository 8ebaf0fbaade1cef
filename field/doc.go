// Package field splits raw input lines into fields.
//
// A Separator chooses one of three policies for a whole run: runs of white
// space, a single delimiter character, or the whole line as one field. The
// same policy decides the output delimiter.
//
//	sep, err := field.ParseSeparator(",", true)
//	line := field.Split("a,,1", sep) // ["a" "" "1"]
//	line.Field(7)                    // ""
package field
