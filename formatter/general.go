package formatter

// GeneralIssueFormatter renders the import checks whose suggestion, when
// present, is a drop-in replacement for the offending lines: joint
// imports, nested imports, relative imports, and bare-after-from. The
// suggestion keeps line numbers so it lines up with the snippet.
type GeneralIssueFormatter struct{}

// IssueTemplate lays out header, snippet, underline with the message,
// then the optional numbered suggestion and note.
func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
