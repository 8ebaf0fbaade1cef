// Package join implements a streaming two-way equi-join over sorted line
// sources.
//
// Both inputs must be sorted on their join field under the comparator in
// use. The engine makes a single forward pass: it advances whichever side
// has the smaller key and, when keys match, gathers the run of equal keys
// on each side and writes their cartesian product. Only the current run is
// held in memory.
//
//	settings := join.DefaultSettings()
//	settings.Unpaired = join.Side1
//	engine := join.NewEngine(settings, left, right, os.Stdout)
//	stats, err := engine.Run(ctx)
//
// Behavior on unsorted input is undefined unless Settings.CheckOrder is set,
// in which case a decreasing key fails the run with UNSORTED_INPUT.
package join
