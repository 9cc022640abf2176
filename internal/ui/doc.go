// Package ui provides the terminal user interface for stacks.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program with three top-level views — Login,
// Register, and Catalog — plus modal overlays (book form, book detail, delete
// confirmation, help) layered over the catalog.
//
// # Package Structure
//
//   - ui.go: root Model, message/command definitions, and the main Run function
//   - auth.go: login and registration forms with busy-state submit handling
//   - catalog.go: catalog key handling, search, and the action affordance logic
//   - cards.go: card grid rendering
//   - form.go: create/edit book form overlay
//   - detail.go: book detail overlay
//   - confirm.go: delete confirmation overlay
//   - toast.go: transient notifications
//   - theme.go: color palettes and lipgloss styles
//
// # Data Flow
//
// Every mutation (create, update, delete, borrow, return) runs as a command;
// on success the command's completion triggers a full catalog reload through
// refreshCmd. The rendered list is never patched locally, so the grid always
// reflects a server response. A 401 anywhere surfaces as unauthorizedMsg and
// forces the Login view.
package ui
