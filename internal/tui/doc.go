// Package tui implements the interactive field editor behind "maskedit edit".
//
// It is a Bubble Tea program with two screens:
//   - Profiles: pick one of the configured profiles from a filterable list
//   - Editor: edit the profile's field with the keyboard
//
// Every keystroke in the editor becomes one session command, so the editor
// behaves exactly like any other host of the engine: typed characters are
// overlaid and validated, arrows increment the token under the caret with
// carry, and tab walks the editable tokens.
//
// # Key Bindings
//
//   - ←/→ move the caret, shift+←/→ extend the selection
//   - ↑/↓ small increment, pgup/pgdn big increment
//   - alt+↑/alt+↓ cycle the character under the caret
//   - tab/shift+tab select the next/previous token
//   - ctrl+v paste from the clipboard, ctrl+y copy the field
//   - ctrl+t replace the whole text, f2 toggle the token table
//   - esc back to the profile list
package tui
