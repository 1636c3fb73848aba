// Package ui contains the Bubble Tea program that browses the vocabulary
// catalog and runs practice quizzes. The Model type focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering,
// and the practice flow.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so it is handled by a focused
//     function (for example, navigation for key presses or selector results).
//   - Navigation helpers (internal/ui/navigation.go) manage the word list at the
//     bottom of the level stack and the Part, Topic, Layout, Theme and command menus
//     that open over it. Filter helpers (internal/ui/input.go) keep text entry
//     isolated from the event loop.
//   - While a practice session is active, key presses go to
//     internal/ui/practice.go instead.
//
// State ownership:
//   - Level state lives in internal/ui/state.Level, which tracks items,
//     filtering, expansion, selection, and viewport calculations.
//   - The Part/Topic choice, its generation counter and the fetched catalogs
//     are owned by internal/state.Selector. The UI only feeds it selections and
//     fetch results and re-renders from what it reports.
//   - Command execution is handled through the internal/ui/command package, so
//     menu actions and catalog fetches run asynchronously via the command bus.
//
// Backend interactions:
//   - Catalog fetches run as tea.Cmd values (fetchCmd, practiceLoadCmd). Their
//     results come back as selectorResultMsg or state.PracticeLoaded. Results
//     from superseded requests are dropped by the selector.
//   - An optional backend.Watcher polls the heartbeat endpoint; Update waits for
//     those events and hands them to applyBackendEvent, which records API
//     health and retries a failed load once the API comes back.
package ui
