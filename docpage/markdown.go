package docpage

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/erraggy/oasdocs/proptree"
)

// templateFS stores the page template.
//
//go:embed templates/page.md.gotmpl
var templateFS embed.FS

const pageTemplate = "templates/page.md.gotmpl"

// Markdown renders the page as CommonMark with collapsible HTML sections.
func (p *Page) Markdown() (string, error) {
	tmpl, err := template.New("page.md.gotmpl").Funcs(templateFuncs()).ParseFS(templateFS, pageTemplate)
	if err != nil {
		return "", fmt.Errorf("docpage: parsing template: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, p); err != nil {
		return "", fmt.Errorf("docpage: executing template: %w", err)
	}
	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"code":   code,
		"join":   strings.Join,
		"fields": renderFields,
	}
}

// renderFields renders nodes as a nested bullet list.
func renderFields(nodes []*proptree.Node) string {
	var b strings.Builder
	writeFields(&b, nodes, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeFields(b *strings.Builder, nodes []*proptree.Node, indent string) {
	for _, n := range nodes {
		b.WriteString(indent + "- " + fieldLabel(n) + "\n")
		inner := indent + "  "
		if n.Description != "" {
			for _, line := range strings.Split(strings.TrimSpace(n.Description), "\n") {
				b.WriteString(inner + strings.TrimRight(line, " \t") + "\n")
			}
		}
		for _, attr := range fieldAttributes(n) {
			b.WriteString(inner + attr + "  \n")
		}
		writeCollapsed(b, "Show sub-properties", n.Properties, inner)
		writeCollapsed(b, "Show item properties", n.ItemProperties, inner)
		writeCollapsed(b, "Show variants", n.Variants, inner)
	}
}

func writeCollapsed(b *strings.Builder, summary string, nodes []*proptree.Node, indent string) {
	if len(nodes) == 0 {
		return
	}
	b.WriteString(indent + "<details><summary>" + summary + "</summary>\n\n")
	writeFields(b, nodes, indent)
	b.WriteString("\n" + indent + "</details>\n")
}

// fieldLabel returns the first line of a field: its name with a "*" when
// required, the display type and the deprecation marker.
func fieldLabel(n *proptree.Node) string {
	label := "**" + escapeMarkdown(n.Name) + "**"
	if n.Name == "" {
		label = "_(unnamed)_"
	}
	if n.Required {
		label += "*"
	}
	if n.Type != "" {
		label += " " + code(n.Type)
	}
	if n.Deprecated {
		label += " (deprecated)"
	}
	return label
}

func fieldAttributes(n *proptree.Node) []string {
	var attrs []string
	if n.Default != "" {
		attrs = append(attrs, "Default: "+code(n.Default))
	}
	if len(n.Values) > 0 {
		values := make([]string, 0, len(n.Values))
		for _, v := range n.Values {
			values = append(values, code(v))
		}
		attrs = append(attrs, "Values: "+strings.Join(values, ", "))
	}
	if n.Range != "" {
		attrs = append(attrs, "Range: "+code(n.Range))
	}
	if n.Example != "" {
		attrs = append(attrs, "Example: "+code(n.Example))
	}
	if n.ItemsExample != "" {
		attrs = append(attrs, "Example: "+code(n.ItemsExample))
	}
	return attrs
}

// code wraps value in an inline code span. Backslashes do not escape inside
// code spans, so the delimiter is one backtick longer than the longest run
// in value, padded with spaces when value touches a backtick.
func code(value string) string {
	longest, run := 0, 0
	for _, r := range value {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	fence := strings.Repeat("`", longest+1)
	if value == "" || strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") {
		return fence + " " + value + " " + fence
	}
	return fence + value + fence
}

func escapeMarkdown(value string) string {
	r := strings.NewReplacer("*", "\\*", "_", "\\_", "[", "\\[", "]", "\\]")
	return r.Replace(value)
}

// normalizeMarkdownOutput collapses extra blank lines outside fenced blocks.
func normalizeMarkdownOutput(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blank := false
	for _, raw := range lines {
		line := raw
		if !inFence {
			line = strings.TrimRight(raw, " \t")
			// Keep two-space hard breaks.
			if line != "" && raw == line+"  " {
				line = raw
			}
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			out = append(out, line)
			blank = false
			continue
		}
		if !inFence && trimmed == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.Join(out, "\n")
}

func ensureTrailingNewline(value string) string {
	return strings.TrimRight(value, "\n") + "\n"
}
