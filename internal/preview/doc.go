// Package preview is an interactive pattern and theme browser built on
// bubbletea. It draws renderer snapshots with lipgloss and reports the
// selection back to the caller.
package preview
