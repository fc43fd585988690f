package editor

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("editor").
		Funcs(template.FuncMap{
			// Cell styles come from a fixed set in the changeset package.
			"css": func(s string) template.CSS { return template.CSS(s) },
		}).
		ParseFS(templateFS, "templates/*.html"),
)
