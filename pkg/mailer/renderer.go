package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailcast/pkg/sanitizer"
)

// Renderer executes named email templates from a filesystem.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	// parsed templates only; rendered output is never cached
	cache map[string]*cachedTemplate
	mu    sync.RWMutex
}

type cachedTemplate struct {
	html *template.Template
	text *texttemplate.Template // nil when <name>.txt does not exist
}

// RenderResult holds the rendered HTML body and the optional text alternative.
type RenderResult struct {
	HTML string
	Text string
}

// NewRenderer creates a renderer reading <name>.html and <name>.txt from filesystem.
func NewRenderer(filesystem fs.FS) *Renderer {
	return &Renderer{
		fs:    filesystem,
		md:    goldmark.New(goldmark.WithExtensions(NewButtonExtension())),
		cache: make(map[string]*cachedTemplate),
	}
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(name)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := cached.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("%w: %s.html: %w", ErrRenderFailed, name, err)
	}

	result := &RenderResult{HTML: html.String()}
	if cached.text != nil {
		var text bytes.Buffer
		if err := cached.text.Execute(&text, data); err != nil {
			return nil, fmt.Errorf("%w: %s.txt: %w", ErrRenderFailed, name, err)
		}
		result.Text = text.String()
	}

	return result, nil
}

// Markdown converts markdown to HTML and sanitizes the result.
func (r *Renderer) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.EmailHTMLBytes(buf.Bytes())), nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	if cached, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	htmlSrc, err := fs.ReadFile(r.fs, name+".html")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
	}
	htmlTmpl, err := template.New(name + ".html").Funcs(r.htmlFuncs()).Parse(string(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("%w: %s.html: %w", ErrRenderFailed, name, err)
	}

	cached := &cachedTemplate{html: htmlTmpl}

	textSrc, err := fs.ReadFile(r.fs, name+".txt")
	switch {
	case err == nil:
		cached.text, err = texttemplate.New(name + ".txt").Funcs(textFuncs).Parse(string(textSrc))
		if err != nil {
			return nil, fmt.Errorf("%w: %s.txt: %w", ErrRenderFailed, name, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s.txt: %w", ErrRenderFailed, name, err)
	}

	r.cache[name] = cached
	return cached, nil
}

func (r *Renderer) htmlFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": r.Markdown,
		"nl2br":    nl2br,
	}
}

// The text variants keep templates portable between the two formats.
var textFuncs = texttemplate.FuncMap{
	"markdown": func(s string) string { return s },
	"nl2br":    func(s string) string { return s },
}

func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
