// Package ui styles command-line output with lipgloss.
//
// A [Palette] holds the named styles used across commands: titles, success and error markers, warnings and
// muted help text. [TrackList] and [PlaylistList] render numbered listings with those styles.
//
// Styles degrade to plain text when the output is not a terminal, so command output stays grep-able.
package ui
