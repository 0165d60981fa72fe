package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

// The browser module is built into static/ before the server binary:
//
//go:generate sh -c "GOOS=js GOARCH=wasm go build -o static/main.wasm ../../cmd/wasm"
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" static/"

//go:embed static
var staticFS embed.FS

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// markdown renders trusted content copy. Raw HTML in the source is dropped.
func markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		log.Printf("markdown render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// jsonScript marshals v for an application/json script tag. encoding/json
// escapes <, > and & so the payload cannot close the tag.
func jsonScript(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal page data: %w", err)
	}
	return template.JS(b), nil
}

var templateFuncs = template.FuncMap{
	"markdown": markdown,
	"json":     jsonScript,
	"lower":    strings.ToLower,
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// staticFiles serves dir (when set) ahead of the embedded assets, so a
// locally built main.wasm and wasm_exec.js can sit next to them.
func staticFiles(dir string) (http.FileSystem, error) {
	embedded, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	layers := []http.FileSystem{}
	if strings.TrimSpace(dir) != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		layers = append(layers, http.Dir(dir))
	}
	layers = append(layers, http.FS(embedded))
	return layeredFS(layers), nil
}

type layeredFS []http.FileSystem

func (l layeredFS) Open(name string) (http.File, error) {
	var firstErr error
	for _, fsys := range l {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
