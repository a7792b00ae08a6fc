// Package cli provides the interactive memorymap command-line client.
//
// It wires configuration, the key-value backend, the memory store, the
// session provider and an interactive REPL. Typical flow: log in with a user
// id, add and edit memories, browse them as a list or timeline, and create
// read-only share links.
//
// Key features:
//   - Login / Logout
//   - Add / Edit / Delete memories (delete and clear ask for confirmation)
//   - List and Timeline views of the principal's memories
//   - Share selected memories or all of them, optionally with Facebook,
//     Twitter, WhatsApp or email intent links; Open a share link read-only
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
