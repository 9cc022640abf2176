// Package state provides thread-safe snapshot storage for the catalog view.
//
// The Store holds the last successfully loaded book list together with the
// per-book "borrowed by me" results. Reloads replace the snapshot wholesale;
// the UI only ever reads defensive copies, so there are no partial updates
// to race against.
package state
