// Package dialect defines the closed set of supported makefile dialects and
// the fixed policy tables keyed by dialect: the target-format alias table, the
// default conversion targets, comment leaders and conventional file names.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect identifies one of the supported makefile syntaxes. It selects which
// parser and emitter pair applies to a file.
type Dialect int

const (
	Unknown Dialect = iota
	GNUMake
	SASC
	DICE
	Lattice
)

// String returns the human-readable dialect name used in diagnostics and in
// emitted header comments.
func (d Dialect) String() string {
	switch d {
	case GNUMake:
		return "GNU Make"
	case SASC:
		return "SAS/C"
	case DICE:
		return "DICE"
	case Lattice:
		return "Lattice"
	default:
		return "Unknown"
	}
}

// CommentLeader returns the comment-leader character for the dialect.
func (d Dialect) CommentLeader() string {
	switch d {
	case SASC, Lattice:
		return ";"
	default:
		return "#"
	}
}

// DefaultFileName is the conventional file name for a makefile of this
// dialect, used when the caller wants a destination name but gave none.
func (d Dialect) DefaultFileName() string {
	switch d {
	case GNUMake:
		return "Makefile"
	case SASC:
		return "smakefile"
	case DICE:
		return "dmakefile"
	case Lattice:
		return "lmkfile"
	default:
		return ""
	}
}

// aliases maps every accepted target-format alias to its dialect. Matching is
// case-insensitive.
var aliases = map[string]Dialect{
	"smake":       SASC,
	"smakefile":   SASC,
	"sasc":        SASC,
	"dmake":       DICE,
	"dmakefile":   DICE,
	"dice":        DICE,
	"makefile":    GNUMake,
	"make":        GNUMake,
	"gnumakefile": GNUMake,
	"gnu":         GNUMake,
	"gcc":         GNUMake,
	"lmk":         Lattice,
	"lmkfile":     Lattice,
	"lattice":     Lattice,
}

// ParseAlias resolves a free-form target-format string to a dialect. An
// unrecognized alias is an error; the caller treats it as fatal.
func ParseAlias(alias string) (Dialect, error) {
	if d, ok := aliases[strings.ToLower(alias)]; ok {
		return d, nil
	}
	return Unknown, fmt.Errorf("unknown target format %q", alias)
}

// DefaultTarget returns the fixed default conversion target for a source
// dialect: GNU and Lattice convert to SAS/C, DICE and SAS/C convert to GNU.
func DefaultTarget(source Dialect) (Dialect, error) {
	switch source {
	case GNUMake, Lattice:
		return SASC, nil
	case DICE, SASC:
		return GNUMake, nil
	default:
		return Unknown, fmt.Errorf("no default target format for %s", source)
	}
}
