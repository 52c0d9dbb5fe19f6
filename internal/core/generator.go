// Package core runs the accgen pipeline: declaration file, entities,
// accessors, rendered output.
package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/origadmin/accgen/internal/generator"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/parser"
	"github.com/origadmin/accgen/internal/template"
)

// Output formats.
const (
	FormatText    = "text"
	FormatMsgpack = "msgpack"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatMsgpack}

// Entity is the outcome of one declared entity. Methods is empty when Err
// is set.
type Entity struct {
	Entity  *model.Entity
	Methods []*model.MethodSpec
	Err     error
}

// Result is the outcome of one declaration file.
type Result struct {
	File     string
	Entities []*Entity
}

// Err joins the errors of every entity.
func (r *Result) Err() error {
	var errs []error
	for _, e := range r.Entities {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errors.Join(errs...)
}

// Generated returns the entities that produced output.
func (r *Result) Generated() []*Entity {
	var out []*Entity
	for _, e := range r.Entities {
		if e.Err == nil {
			out = append(out, e)
		}
	}
	return out
}

// AccessorGenerator ties the front-end, the synthesizer and the renderer.
type AccessorGenerator struct {
	parser    *parser.Parser
	generator model.Synthesizer
	tmplMgr   *template.Manager
}

// NewGenerator creates a pipeline with the embedded templates.
func NewGenerator() *AccessorGenerator {
	return &AccessorGenerator{
		parser:    parser.NewParser(),
		generator: generator.NewGenerator(),
		tmplMgr:   template.NewManager(),
	}
}

// WithSynthesizer replaces the accessor synthesizer.
func (g *AccessorGenerator) WithSynthesizer(s model.Synthesizer) *AccessorGenerator {
	g.generator = s
	return g
}

// LoadTemplates overrides the embedded templates with files or directories.
func (g *AccessorGenerator) LoadTemplates(paths ...string) error {
	if err := g.tmplMgr.Load(paths...); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	return nil
}

// ProcessFile decodes the declaration file at path and synthesizes the
// accessors of every entity in it.
func (g *AccessorGenerator) ProcessFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file: %w", err)
	}
	return g.Process(path, data)
}

// Process decodes a declaration document. The returned error is set only
// when the document as a whole is unusable; entity errors are reported on
// the Result and leave the other entities untouched.
func (g *AccessorGenerator) Process(name string, data []byte) (*Result, error) {
	decls, err := g.parser.Parse(name, data)
	if err != nil {
		return nil, err
	}
	res := &Result{File: name}
	for _, d := range decls {
		ent := &Entity{Entity: d.Entity, Err: d.Err}
		if ent.Err == nil {
			ent.Methods, ent.Err = g.generator.Generate(d.Entity)
		}
		if ent.Err != nil {
			slog.Warn("entity skipped", "entity", d.Entity.Name, "error", ent.Err)
			ent.Methods = nil
		} else {
			slog.Info("entity generated", "entity", d.Entity.Name, "methods", len(ent.Methods))
		}
		res.Entities = append(res.Entities, ent)
	}
	return res, nil
}

// Write renders the generated entities of r to w in format.
func (g *AccessorGenerator) Write(w io.Writer, r *Result, format string) error {
	switch format {
	case FormatText, "":
		impls := make([]template.Impl, 0, len(r.Entities))
		for _, e := range r.Generated() {
			impls = append(impls, template.NewImpl(e.Entity.Name, e.Methods))
		}
		return g.tmplMgr.Render(w, impls)
	case FormatMsgpack:
		return EncodeMsgpack(w, r)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
