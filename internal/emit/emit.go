// Package emit serializes the structural model into one of the four dialect
// syntaxes, routing variable values and recipe commands through the mapping
// tables on the way out.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/makefile"
	"github.com/amigazen/gen/internal/mapping"
)

// headerLabel is the format name each emitter announces in its header
// comment.
func headerLabel(d dialect.Dialect) string {
	switch d {
	case dialect.GNUMake:
		return "GNU Make"
	case dialect.SASC:
		return "SAS/C SMakefile"
	case dialect.DICE:
		return "DICE dmakefile"
	case dialect.Lattice:
		return "Lattice lmkfile"
	default:
		return "Unknown"
	}
}

// patternHeader is the target dialect's native pattern-rule form. Pattern
// rules always render in this form, however the source spelled the pattern.
func patternHeader(d dialect.Dialect) string {
	switch d {
	case dialect.GNUMake:
		return "%.o: %.c"
	case dialect.DICE:
		return "%(left): %(right)"
	default:
		return ".c.o:"
	}
}

// Write walks the model in original order and emits it in the target
// dialect's syntax. It returns the mapping decisions taken, for the review
// report. The writer receives the complete document or nothing: Write only
// touches w after the target dialect is known to be emittable.
func Write(w io.Writer, m *makefile.Makefile, target dialect.Dialect) ([]mapping.Decision, error) {
	if target == dialect.Unknown {
		return nil, fmt.Errorf("cannot emit dialect %s", target)
	}

	leader := target.CommentLeader()
	var decisions []mapping.Decision

	// Two-line header identifying source format and generator, then the
	// source comments re-prefixed with this dialect's leader. Comments live
	// in the header block only, never inside a rule body.
	fmt.Fprintf(w, "%s Converted to %s format from %s\n", leader, headerLabel(target), m.Dialect)
	fmt.Fprintf(w, "%s Generated by GenMaki\n", leader)
	for _, comment := range m.Comments {
		fmt.Fprintf(w, "%s %s\n", leader, stripLeader(comment))
	}
	fmt.Fprintln(w)

	for _, v := range m.Variables {
		value := v.Value
		switch {
		case strings.EqualFold(v.Name, "CC"):
			mapped, d := mapping.Compiler(value, target)
			decisions = append(decisions, d)
			value = mapped
		case strings.EqualFold(v.Name, "CFLAGS"):
			mapped, ds := mapping.Flags(value, m.Dialect, target)
			decisions = append(decisions, ds...)
			value = mapped
		}
		fmt.Fprintf(w, "%s = %s\n", v.Name, value)
	}
	if len(m.Variables) > 0 {
		fmt.Fprintln(w)
	}

	for i := range m.Rules {
		rule := &m.Rules[i]
		switch {
		case rule.PatternRule:
			fmt.Fprintf(w, "%s\n", patternHeader(target))
		case rule.FormVariant && target == dialect.DICE:
			fmt.Fprintf(w, "%s :: %s\n", rule.Targets, rule.Dependencies)
		default:
			fmt.Fprintf(w, "%s: %s\n", rule.Targets, rule.Dependencies)
		}

		for _, cmd := range rule.Commands {
			mapped, d := mapping.Command(cmd.Text, m.Dialect, target)
			decisions = append(decisions, d)
			fmt.Fprintf(w, "\t%s\n", mapped)
		}
		if len(rule.Commands) == 0 && target == dialect.SASC {
			// Empty recipes are legal but usually mean the conversion lost
			// something; the SAS/C emitter leaves a marker for the reader.
			fmt.Fprintf(w, "\t%s No commands specified - may need manual conversion\n", leader)
		}

		fmt.Fprintln(w)
	}

	return decisions, nil
}

// stripLeader removes the source dialect's comment leader from a stored
// comment so the target leader can replace it.
func stripLeader(comment string) string {
	trimmed := strings.TrimLeft(comment, "#;")
	return strings.TrimSpace(trimmed)
}
