package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/swe363/gradehtml/internal/models"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
pre { background: #f6f8fa; padding: 0.8rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

var (
	mdRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer  = bluemonday.UGCPolicy()
)

// RenderHTML converts the narrative report into a standalone HTML page. The
// report embeds file names and error text from the run, so the rendered body
// is passed through a UGC sanitizer before it is wrapped.
func RenderHTML(r *models.GradeReport) ([]byte, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(escapeInlineMarkup(RenderMarkdown(r))), &body); err != nil {
		return nil, fmt.Errorf("rendering html report: %w", err)
	}

	title := strings.TrimPrefix(Title, "# ")
	return fmt.Appendf(nil, htmlPage, html.EscapeString(title), sanitizer.SanitizeBytes(body.Bytes())), nil
}

// escapeInlineMarkup turns tag names quoted in check descriptions, like
// "<h1>", into entities so they render as text. Fenced blocks are left alone
// since goldmark escapes them itself.
func escapeInlineMarkup(md string) string {
	lines := strings.Split(md, "\n")
	fenced := false
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			fenced = !fenced
			continue
		}
		if !fenced {
			lines[i] = strings.ReplaceAll(line, "<", "&lt;")
		}
	}
	return strings.Join(lines, "\n")
}
