// Package validator checks the parsed structural model against an embedded
// CUE schema before anything is emitted.
//
// The parsers tolerate almost anything, so a malformed model can only come
// from a bug in this program. Rather than let a bad model produce a quietly
// wrong makefile, the conversion engine validates it and aborts with a
// schema error that names the offending field.
package validator

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/amigazen/gen/internal/makefile"
)

//go:embed model_schema.cue
var modelSchema []byte

// Validator validates structural models against the embedded CUE contract.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(modelSchema)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling model schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Model checks one parsed makefile model against the #Makefile definition.
// Returns nil when the model satisfies the contract.
func (v *Validator) Model(m *makefile.Makefile) error {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling model: %w", err)
	}

	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates raw model JSON directly against the schema.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling model as CUE: %w", dataValue.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath("#Makefile"))
	if def.Err() != nil {
		return fmt.Errorf("looking up #Makefile definition: %w", def.Err())
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("model contract violated: %w", err)
	}

	return nil
}
