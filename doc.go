// Package interactor turns raw pointer input into region-scoped events for a
// state machine.
//
// Users import this single package for the complete public API: regions,
// picking, the event translator, and the Surface that ties a machine to a
// parent, a canvas, and an asynchronous definition loader.
//
// A raw event (press, move, release at a point) is hit-tested against the
// machine's regions, diffed against the previous hit list, and delivered as
// exit, enter, and then press / move_inside / release / release_none events,
// topmost region first within each group.
package interactor
