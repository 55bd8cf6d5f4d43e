// Package cli provides the interactive ArcaneDex command-line client.
//
// It wires configuration, the local SQLite state, the HTTP API client, the
// connectivity watcher and the availability controller, then runs a REPL.
// The controller decides what "list" shows: the live paginated catalog, the
// creatures saved for offline use, or a prompt to log in.
//
// Key features:
//   - Register / Login / Logout, gated by the terms of use
//   - Paged listing with search, favorites-only filter and "more"
//   - Favorites with custom background images
//   - Profile view, edit and account deletion
//   - Admin catalog management
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
