// Package machine loads machine definitions and runs them as
// interactor.Machine implementations.
//
// A definition lists regions in draw order and states with transitions keyed
// by semantic event name and region name. Definitions are read from JSON,
// YAML or TOML, from local files or HTTP(S) URLs.
package machine
