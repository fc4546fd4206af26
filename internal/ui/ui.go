// Package ui renders operator-facing panel messages. Print-mode output is
// machine-consumable and never goes through here.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Out is where panels are written. Tests swap it out.
var Out io.Writer = os.Stdout

var (
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Info renders a blue panel.
func Info(title, message string) { panel(title, message, infoColor) }

// Success renders a green panel.
func Success(title, message string) { panel(title, message, successColor) }

// Warn renders a yellow panel.
func Warn(title, message string) { panel(title, message, warnColor) }

// Error renders a red panel.
func Error(title, message string) { panel(title, message, errorColor) }

// panel draws a bordered box with the title in the top edge. The border
// carries the color; the message body stays plain.
func panel(title, message string, c *color.Color) {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")

	width := len(title) + 1
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}

	paint := c.SprintFunc()
	fmt.Fprintln(Out, paint("╭─ "+title+" "+strings.Repeat("─", width-len(title)-1)+"╮"))
	for _, l := range lines {
		fmt.Fprintf(Out, "%s %-*s %s\n", paint("│"), width, l, paint("│"))
	}
	fmt.Fprintln(Out, paint("╰"+strings.Repeat("─", width+2)+"╯"))
}
