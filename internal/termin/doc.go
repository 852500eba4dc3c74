// Package termin reads pointer input from a terminal.
//
// The terminal is put in raw mode with SGR any-motion mouse reporting, and
// each report is decoded into an interactor.RawEvent in cell coordinates.
// Only the left button drives press and release; motion with or without a
// button held is a move.
package termin
