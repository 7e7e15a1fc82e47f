// Package convert drives one conversion: it validates the parsed model,
// emits it in the target dialect, and collects the mapping decisions into a
// report for the review rules.
//
// The engine is independent of how the model was parsed; it sees only the
// structural model and the target dialect.
package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/emit"
	"github.com/amigazen/gen/internal/makefile"
	"github.com/amigazen/gen/internal/mapping"
	"github.com/amigazen/gen/internal/validator"
)

var log = commonlog.GetLogger("genmaki.convert")

// Report summarizes one conversion for diagnostics and review.
type Report struct {
	Source     dialect.Dialect
	Target     dialect.Dialect
	Filename   string
	Variables  int
	Rules      int
	Decisions  []mapping.Decision
	EmptyRules []string
}

// Engine performs conversions. One engine may serve several conversions; the
// models it converts are owned by their callers.
type Engine struct {
	validator *validator.Validator
}

// New builds an engine with a compiled model validator.
func New() (*Engine, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}
	return &Engine{validator: v}, nil
}

// Convert validates the model and writes it to w in the target dialect.
func (e *Engine) Convert(m *makefile.Makefile, target dialect.Dialect, w io.Writer) (*Report, error) {
	if err := e.validator.Model(m); err != nil {
		return nil, err
	}

	log.Infof("converting %s from %s to %s (%d variables, %d rules)",
		m.Filename, m.Dialect, target, len(m.Variables), len(m.Rules))

	decisions, err := emit.Write(w, m, target)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Source:    m.Dialect,
		Target:    target,
		Filename:  m.Filename,
		Variables: len(m.Variables),
		Rules:     len(m.Rules),
		Decisions: decisions,
	}
	for _, r := range m.Rules {
		if len(r.Commands) == 0 {
			report.EmptyRules = append(report.EmptyRules, r.Targets)
		}
	}
	return report, nil
}

// ConvertFile converts to the named destination file, or to stdout when the
// name is empty. The destination is created only after the whole document
// has been rendered, so a failed conversion never leaves partial output
// behind.
func (e *Engine) ConvertFile(m *makefile.Makefile, target dialect.Dialect, outputFile string) (*Report, error) {
	if outputFile == "" {
		return e.Convert(m, target, os.Stdout)
	}

	var buf bytes.Buffer
	report, err := e.Convert(m, target, &buf)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outputFile, err)
	}
	log.Infof("wrote %s", outputFile)
	return report, nil
}
