// Package template renders synthesized accessors as impl blocks.
package template

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed impl.tpl
var implTemplate string

// Manager holds the parsed templates. Externally loaded templates replace
// the embedded definitions of the same name.
type Manager struct {
	tmpl *template.Template
}

// NewManager creates a manager with the embedded templates.
func NewManager() *Manager {
	return &Manager{tmpl: template.Must(template.New("impl.tpl").Parse(implTemplate))}
}

// Load parses additional template files. A directory contributes every
// *.tpl file in it. The manager is left unchanged on error.
func (m *Manager) Load(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	tpl, err := m.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("template clone failed: %w", err)
	}
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("load template: %w", err)
		}
		files := []string{path}
		if fi.IsDir() {
			if files, err = filepath.Glob(filepath.Join(path, "*.tpl")); err != nil {
				return fmt.Errorf("glob pattern error: %w", err)
			}
		}
		for _, f := range files {
			if _, err := tpl.ParseFiles(f); err != nil {
				return fmt.Errorf("parse %s failed: %w", f, err)
			}
		}
	}
	m.tmpl = tpl
	return nil
}

// Render writes impls to w. Entities without methods produce no block.
func (m *Manager) Render(w io.Writer, impls []Impl) error {
	nonEmpty := make([]Impl, 0, len(impls))
	for _, impl := range impls {
		if len(impl.Methods) > 0 {
			nonEmpty = append(nonEmpty, impl)
		}
	}
	return m.tmpl.ExecuteTemplate(w, "file", nonEmpty)
}

// RenderString renders a single impl block.
func (m *Manager) RenderString(impl Impl) (string, error) {
	var buf bytes.Buffer
	if err := m.Render(&buf, []Impl{impl}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
