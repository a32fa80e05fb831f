package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/mzstk"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// DiagnosticData is the input of the diagnostic template.
type DiagnosticData struct {
	Category        string
	Filename        string
	HasPosition     bool
	Padding         string
	StartLine       int
	StartColumn     int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Note            string
	SnippetLines    []string
}

const diagnosticTemplate = `{{header .Category .MaxLineNumWidth .Filename .HasPosition .StartLine .StartColumn -}}
{{- if .HasPosition }}
{{snippet .SnippetLines .StartLine .MaxLineNumWidth .Padding -}}
{{underline .Padding .StartLine .StartColumn .EndColumn .SnippetLines}}
{{- end }}
{{message .Message .Padding}}
{{- if .Note }}
{{note .Note .Padding}}
{{- end }}
`

var tmpl = template.Must(template.New("diagnostic").Funcs(template.FuncMap{
	"header":    header,
	"snippet":   codeSnippet,
	"underline": underline,
	"message":   message,
	"note":      note,
}).Parse(diagnosticTemplate))

// GenerateFormattedDiagnostic formats diagnostics into a human-readable string,
// quoting the offending line of src when the diagnostic has a position.
// src may be nil.
func GenerateFormattedDiagnostic(diags []tt.Diagnostic, src *mzstk.SourceCode) string {
	var builder strings.Builder
	for _, d := range diags {
		builder.WriteString(buildDiagnostic(d, src))
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildDiagnostic(d tt.Diagnostic, src *mzstk.SourceCode) string {
	var lines []string
	if src != nil {
		lines = src.Lines
	}
	hasPosition := d.HasPosition() && d.Start.Line <= len(lines)
	maxLineNumWidth := calculateMaxLineNumWidth(d.Start.Line)

	data := DiagnosticData{
		Category:        d.Category,
		Filename:        d.Filename,
		HasPosition:     hasPosition,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		StartLine:       d.Start.Line,
		StartColumn:     d.Start.Column,
		EndColumn:       d.End.Column,
		MaxLineNumWidth: maxLineNumWidth,
		Message:         d.Message,
		Note:            d.Note,
		SnippetLines:    lines,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting diagnostic: %v", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(category string, maxLineNumWidth int, filename string, hasPosition bool, line, column int) string {
	endString := errorStyle.Sprint("error: ")
	endString += ruleStyle.Sprintf("%s\n", category)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	if hasPosition {
		endString += fileStyle.Sprintf("%s:%d:%d", filename, line, column)
	} else {
		endString += fileStyle.Sprint(filename)
	}
	return endString
}

func codeSnippet(lines []string, line int, maxLineNumWidth int, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	lineNum := fmt.Sprintf("%*d", maxLineNumWidth, line)
	endString += lineStyle.Sprintf("%s | ", lineNum)
	endString += expandTabs(lines[line-1]) + "\n"
	return endString
}

func underline(padding string, line, startColumn, endColumn int, lines []string) string {
	source := lines[line-1]
	start := calculateVisualColumn(source, startColumn)
	end := calculateVisualColumn(source, endColumn)
	length := end - start + 1
	if length < 1 {
		length = 1
	}

	endString := lineStyle.Sprintf("%s| ", padding)
	endString += strings.Repeat(" ", start)
	endString += messageStyle.Sprint(strings.Repeat("^", length))
	return endString
}

func message(msg string, padding string) string {
	return lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprint(msg)
}

func note(n string, padding string) string {
	return lineStyle.Sprintf("%s= ", padding) + noteStyle.Sprint("note: ") + n
}
