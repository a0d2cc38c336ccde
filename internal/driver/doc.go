// Package driver turns a configuration into one recorded measurement.
//
// A run validates the configuration against a Registry of backends,
// constructs the selected target, measures it with speed.FunSpeed and appends
// the result to the report file. Configuration errors are reported before
// anything is constructed, and no record is written when a run fails.
//
// Sweeps expand a YAML file into many configurations and run them in order.
package driver
