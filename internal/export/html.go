package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlStyle = `body{font-family:-apple-system,"Segoe UI",Roboto,sans-serif;max-width:900px;margin:2rem auto;color:#2c3e50}
table{border-collapse:collapse;width:100%;margin:1rem 0}
th,td{border:1px solid #ccc;padding:.4rem .6rem;text-align:left}
th{background:#ecf0f1}
h1{color:#3498db}
@media print{body{margin:0}}`

// HTML writes a printable standalone page built from the Markdown report.
func HTML(w io.Writer, in Input) error {
	var md bytes.Buffer
	writeMarkdown(&md, in)

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	title := "Relatório PORTAGE - " + in.Full.Child.Name
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), htmlStyle, body.Bytes())
	return err
}
