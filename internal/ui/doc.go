// Package ui contains the Bubble Tea program of the key manager. The Model type
// focuses on message orchestration; dedicated helpers own key handling,
// command dispatch, rendering, and the option and clipboard commands.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse wheel, resizes, ticks, process exits and
//     watcher events).
//   - Key presses are translated into command.Command values (keys.go) or
//     edit the prompt entry (input.go). Typed entries are parsed by the
//     internal/command package.
//   - Every command goes through Model.Dispatch (dispatch.go), the only place
//     that calls the Engine and mutates the tables.
//
// State ownership:
//   - The key table, the options menu, the help list, the prompt and the
//     active tab live in internal/ui/state.
//   - Fetched key lists and the saved cursor of each category are cached in
//     internal/state.KeyStore so switching tabs does not reload the keyring.
//   - Interactive engine commands (edit, sign, generate, receive) run through
//     the internal/ui/command bus, which suspends the program while they own the
//     terminal and reports back with an ExitMsg.
//
// Backend interactions:
//   - An optional backend.Watcher polls the keyring; when the polled signature
//     differs from the one loaded by the last refresh a warning is shown. The
//     tables only change on an explicit refresh.
package ui
