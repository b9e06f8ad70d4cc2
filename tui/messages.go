// ABOUTME: Bubble Tea message types used in the TUI message loop.
// ABOUTME: Each type wraps a UI event for the tea.Msg interface (which is interface{}).
package tui

// RepositionMsg requests a tooltip position recompute. At most one is ever
// in flight; scroll and resize events while one is pending are no-ops.
type RepositionMsg struct{}
