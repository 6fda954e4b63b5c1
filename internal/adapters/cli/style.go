package cli

import "github.com/fatih/color"

// Colors are dropped automatically when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen)
	headingColor = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

func success() string {
	return successColor.Sprint("✓")
}

func heading(s string) string {
	return headingColor.Sprint(s)
}

func dim(s string) string {
	return dimColor.Sprint(s)
}
