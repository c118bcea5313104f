package render

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/kakunje/prakriti/internal/assessment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; color: #222; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.6rem; }
pre { background: #f7f7fa; padding: 0.75rem; white-space: pre-wrap; }
</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML writes the Markdown report converted to a standalone HTML page. Raw
// HTML in the source is not passed through.
func HTML(w io.Writer, r *assessment.Report) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown(r)), &body); err != nil {
		return fmt.Errorf("converting report to HTML: %w", err)
	}

	title := html.EscapeString(fmt.Sprintf("%s: %s", r.App.AppName, r.DisplayName()))
	if _, err := fmt.Fprintf(w, htmlHead, title); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFoot)
	return err
}
