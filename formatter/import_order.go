package formatter

// ImportOrderFormatter renders ordering issues. The suggestion on these
// issues is the whole reordered import block, so it is shown without the
// per-line numbering the general formatter uses.
type ImportOrderFormatter struct{}

func (f *ImportOrderFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}

{{- if .Suggestion }}
{{expectedOrder .Suggestion .Padding}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
