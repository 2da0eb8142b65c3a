// Package cli provides the interactive userdir command-line client.
//
// It wires configuration, the local database, the random-user API client and
// the state store, then runs a REPL over them. On start it restores
// favorites and fetches page 1; when the network fails it shows cached users
// and reports the switch to offline mode.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user
// exits. See runREPL for the command set.
package cli
