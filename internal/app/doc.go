// Package app provides the orchestration layer for the stacks application.
//
// It serves as the composition root where configuration, the persisted
// session, the library API client, the snapshot store, and the UI are
// initialized and connected:
//
//  1. Load configuration from ~/.config/stacks/config.toml
//  2. Point the logrus logger at the configured log file
//  3. Load the persisted session (role + theme)
//  4. Initialize the HTTP client for the library server
//  5. Create the shared state.Store
//  6. Start the TUI and block until the user exits or the context cancels
//
// Whether the TUI opens on the login view or straight on the catalog is
// decided by the loaded session: a stored role means "already signed in".
package app
