package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/parser"
)

var (
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	caretStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// RenderDiagnostic formats a lexer or parser error with the offending
// source line, a caret under the error column, and any suggestion.
// Other errors fall back to a one-line message.
func RenderDiagnostic(err error) string {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return renderAt(perr.Pos.String(), perr.Message, perr.LineText, perr.Pos.Column, perr.Suggestion)
	}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return renderAt(lerr.Pos.String(), lerr.Message, lerr.LineText, lerr.Pos.Column, "")
	}
	return errorStyle.Render("error: ") + err.Error()
}

func renderAt(location, message, lineText string, column int, hint string) string {
	var b strings.Builder
	b.WriteString(locationStyle.Render(location))
	b.WriteString(" ")
	b.WriteString(errorStyle.Render("error:"))
	b.WriteString(" ")
	b.WriteString(message)
	if lineText != "" {
		b.WriteString("\n    ")
		b.WriteString(sourceStyle.Render(lineText))
		if column > 0 && column <= len(lineText)+1 {
			b.WriteString("\n    ")
			b.WriteString(strings.Repeat(" ", column-1))
			b.WriteString(caretStyle.Render("^"))
		}
	}
	if hint != "" {
		b.WriteString("\n    ")
		b.WriteString(hintStyle.Render(fmt.Sprintf("hint: %s", hint)))
	}
	return b.String()
}
