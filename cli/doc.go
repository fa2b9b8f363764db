// Package cli defines the command-line interface for runr.
//
// Flags are declared declaratively on the [CLI] struct and parsed with
// [github.com/alecthomas/kong]. Subcommands live in the cli/cmd package;
// running runr with no subcommand falls through to the run command.
package cli
