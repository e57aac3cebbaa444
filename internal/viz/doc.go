// Package viz renders shot and sweep results in the terminal.
//
// Line plots are drawn with asciigraph, summaries are styled with
// lipgloss, and long sweeps can report progress through a Bubble Tea
// program (see RunProgress).
package viz
