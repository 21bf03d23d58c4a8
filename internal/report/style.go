package report

import "github.com/fatih/color"

var (
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	boldRed = color.New(color.Bold, color.FgRed).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
)
