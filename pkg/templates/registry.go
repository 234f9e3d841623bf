package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed assets/**/*.tmpl
var embeddedFS embed.FS

// Registry resolves the embedded prompt templates by ID. IDs mirror the
// asset path without the extension, e.g. "prompts/strategy_synthesis".
// All prompts are compiled in; there is no disk loading.
type Registry struct {
	templates map[string]*template.Template
}

// Get returns the lazily initialized registry over the embedded prompts.
func Get() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = newRegistry()
	})

	if defaultErr != nil {
		panic(defaultErr)
	}

	return defaultRegistry
}

// Render executes a template by ID using the provided data.
func (r *Registry) Render(id string, data any) (string, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return "", fmt.Errorf("template not found: %s", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", id, err)
	}

	return buf.String(), nil
}

// List returns all known template IDs.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}

	return ids
}

func newRegistry() (*Registry, error) {
	sub, err := fs.Sub(embeddedFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("prepare embedded templates: %w", err)
	}

	r := &Registry{templates: map[string]*template.Template{}}

	err = fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".tmpl" {
			return nil
		}

		content, err := fs.ReadFile(sub, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", p, err)
		}

		id := strings.TrimSuffix(p, ".tmpl")
		parsed, err := template.New(id).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", id, err)
		}

		r.templates[id] = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)
