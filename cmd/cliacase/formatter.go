package main

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles. lipgloss degrades to plain text when stdout
// is not a terminal, so piped output stays parseable.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
