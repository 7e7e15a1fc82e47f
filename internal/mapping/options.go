// Package mapping holds the per-dialect-pair translation tables for compiler
// options and command invocations.
//
// Every ordered (source, target) pair has its own table: flag semantics are
// not reversible in general (Lattice -g becomes the two DICE flags -s -d1,
// but DICE -s alone maps back to plain -g), so no table is derived from
// another. Each entry records an explicit action - Replace, Drop or
// PassThrough - and entries whose drop-versus-pass-through intent the
// original tool never documented carry no Note, which the review policy
// surfaces for human attention.
package mapping

import (
	"strings"

	"github.com/amigazen/gen/internal/dialect"
)

// Action says what a matched table entry does with its token.
type Action int

const (
	// Replace substitutes the target dialect's equivalent.
	Replace Action = iota
	// Drop removes the token; the target dialect has no equivalent.
	Drop
	// PassThrough keeps the token unchanged by explicit choice (as opposed
	// to the implicit pass-through of a token no entry matches).
	PassThrough
)

func (a Action) String() string {
	switch a {
	case Replace:
		return "replace"
	case Drop:
		return "drop"
	default:
		return "pass_through"
	}
}

// Entry is one row of an option table. Token matches the whole option
// case-insensitively, or the option's head case-sensitively when Prefix is
// set (compound forms: include paths, preprocessor definitions — these keep
// their case so -d1 never matches the -D prefix). Replacement entries give
// either a literal To or a Rewrite for compound forms. Note documents why the
// entry does what it does; an empty Note on a Drop or PassThrough entry marks
// the intent as inherited-but-undocumented.
type Entry struct {
	Token   string
	Prefix  bool
	Action  Action
	To      string
	Rewrite func(token string) string
	Note    string
}

type pair struct {
	from, to dialect.Dialect
}

// Compound-form rewrites between the -X<value> and KEYWORD=<value> worlds.
func incToSAS(tok string) string { return "INCLUDEDIR=" + tok[len("-I"):] + ":" }
func incFromSAS(tok string) string {
	return "-I" + strings.TrimSuffix(tok[len("INCLUDEDIR="):], ":")
}
func defToSAS(tok string) string   { return "DEF=" + tok[len("-D"):] }
func defFromSAS(tok string) string { return "-D" + tok[len("DEF="):] }

// optionTables is the full translation matrix, one table per ordered dialect
// pair. Entries are evaluated in order and the first match wins, so exact
// spellings (-DNONAMES) come before the prefix forms that would shadow them
// (-D).
var optionTables = map[pair][]Entry{
	{dialect.Lattice, dialect.SASC}: {
		{Token: "-O", Action: Replace, To: "OPTIMIZE"},
		{Token: "-DNONAMES", Action: Replace, To: "NOSTANDARDIO"},
		{Token: "-DDEFBLOCKING=", Prefix: true, Action: Drop, Note: "no SAS/C equivalent"},
		{Token: "-I", Prefix: true, Action: Replace, Rewrite: incToSAS},
		{Token: "-v", Action: Replace, To: "VERBOSE"},
		{Token: "-d2", Action: Replace, To: "DEBUG=L"},
		{Token: "-y", Action: Replace, To: "DEBUG=L"},
		{Token: "-ms", Action: Replace, To: "DATA=NEAR"},
		{Token: "-D", Prefix: true, Action: Replace, Rewrite: defToSAS},
		{Token: "-w", Action: Replace, To: "IGN=A"},
		{Token: "-g", Action: Replace, To: "DEBUG=FF"},
		{Token: "-c", Action: Replace, To: "OBJNAME"},
		{Token: "-E", Action: Replace, To: "PPONLY"},
		{Token: "-a", Action: Replace, To: "DISASM"},
	},
	{dialect.Lattice, dialect.DICE}: {
		{Token: "-O", Action: Replace, To: "-O"},
		{Token: "-DNONAMES", Action: Drop, Note: "no DICE equivalent"},
		{Token: "-DDEFBLOCKING=", Prefix: true, Action: Drop, Note: "no DICE equivalent"},
		{Token: "-I", Prefix: true, Action: PassThrough, Note: "DICE keeps -I form"},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-d2", Action: Replace, To: "-d1"},
		{Token: "-y", Action: Replace, To: "-d1"},
		{Token: "-ms", Action: Replace, To: "-ms"},
		{Token: "-D", Prefix: true, Action: PassThrough, Note: "DICE keeps -D form"},
		{Token: "-w", Action: Drop, Note: "DICE has no warning-suppression flag"},
		{Token: "-g", Action: Replace, To: "-s -d1", Note: "one Lattice flag, two DICE flags"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-a", Action: Replace, To: "-a"},
	},
	{dialect.Lattice, dialect.GNUMake}: {
		{Token: "-O", Action: Replace, To: "-O2"},
		{Token: "-DNONAMES", Action: Drop},
		{Token: "-DDEFBLOCKING=", Prefix: true, Action: Drop},
		{Token: "-I", Prefix: true, Action: PassThrough, Note: "gcc keeps -I form"},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-d2", Action: Replace, To: "-g"},
		{Token: "-y", Action: Replace, To: "-g"},
		{Token: "-ms", Action: Replace, To: "-m68000"},
		{Token: "-D", Prefix: true, Action: PassThrough, Note: "gcc keeps -D form"},
		{Token: "-w", Action: Replace, To: "-w"},
		{Token: "-g", Action: Replace, To: "-g"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-a", Action: Replace, To: "-S", Note: "gcc spells assembly output -S"},
	},

	{dialect.SASC, dialect.GNUMake}: {
		{Token: "OPTIMIZE", Action: Replace, To: "-O2"},
		{Token: "NOSTANDARDIO", Action: Drop, Note: "SAS/C-specific"},
		{Token: "INCLUDEDIR=", Prefix: true, Action: Replace, Rewrite: incFromSAS},
		{Token: "DEBUG=L", Action: Replace, To: "-g"},
		{Token: "DEBUG=FF", Action: Replace, To: "-g"},
		{Token: "DATA=NEAR", Action: Replace, To: "-m68000"},
		{Token: "VERBOSE", Action: Replace, To: "-v"},
		{Token: "IGN=A", Action: Replace, To: "-w"},
		{Token: "DEF=", Prefix: true, Action: Replace, Rewrite: defFromSAS},
		{Token: "OBJNAME", Action: Replace, To: "-c"},
		{Token: "PPONLY", Action: Replace, To: "-E"},
		{Token: "DISASM", Action: Replace, To: "-S"},
	},
	{dialect.SASC, dialect.DICE}: {
		{Token: "OPTIMIZE", Action: Replace, To: "-O"},
		{Token: "NOSTANDARDIO", Action: Drop, Note: "SAS/C-specific"},
		{Token: "INCLUDEDIR=", Prefix: true, Action: Replace, Rewrite: incFromSAS},
		{Token: "DEBUG=L", Action: Replace, To: "-d1"},
		{Token: "DEBUG=FF", Action: Replace, To: "-s -d1"},
		{Token: "DATA=NEAR", Action: Replace, To: "-ms"},
		{Token: "VERBOSE", Action: Replace, To: "-v"},
		{Token: "IGN=A", Action: Drop, Note: "DICE has no warning-suppression flag"},
		{Token: "DEF=", Prefix: true, Action: Replace, Rewrite: defFromSAS},
		{Token: "OBJNAME", Action: Replace, To: "-c"},
		{Token: "PPONLY", Action: Replace, To: "-E"},
		{Token: "DISASM", Action: Replace, To: "-a"},
	},
	{dialect.SASC, dialect.Lattice}: {
		{Token: "OPTIMIZE", Action: Replace, To: "-O"},
		{Token: "NOSTANDARDIO", Action: Drop},
		{Token: "INCLUDEDIR=", Prefix: true, Action: Replace, Rewrite: incFromSAS},
		{Token: "DEBUG=L", Action: Replace, To: "-d2"},
		{Token: "DEBUG=FF", Action: Replace, To: "-g"},
		{Token: "DATA=NEAR", Action: Replace, To: "-ms"},
		{Token: "VERBOSE", Action: Replace, To: "-v"},
		{Token: "IGN=A", Action: Replace, To: "-w"},
		{Token: "DEF=", Prefix: true, Action: Replace, Rewrite: defFromSAS},
		{Token: "OBJNAME", Action: Replace, To: "-c"},
		{Token: "PPONLY", Action: Replace, To: "-E"},
		{Token: "DISASM", Action: Replace, To: "-a"},
	},

	{dialect.DICE, dialect.GNUMake}: {
		{Token: "-O", Action: Replace, To: "-O2"},
		{Token: "-d1", Action: Replace, To: "-g"},
		{Token: "-ms", Action: Replace, To: "-m68000"},
		{Token: "-D", Prefix: true, Action: PassThrough, Note: "gcc keeps -D form"},
		{Token: "-I", Prefix: true, Action: PassThrough, Note: "gcc keeps -I form"},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-a", Action: Replace, To: "-S"},
		{Token: "-s", Action: Replace, To: "-g", Note: "debug symbols fold into -g"},
	},
	{dialect.DICE, dialect.SASC}: {
		{Token: "-O", Action: Replace, To: "OPTIMIZE"},
		{Token: "-d1", Action: Replace, To: "DEBUG=L"},
		{Token: "-ms", Action: Replace, To: "DATA=NEAR"},
		{Token: "-D", Prefix: true, Action: Replace, Rewrite: defToSAS},
		{Token: "-I", Prefix: true, Action: Replace, Rewrite: incToSAS},
		{Token: "-v", Action: Replace, To: "VERBOSE"},
		{Token: "-c", Action: Replace, To: "OBJNAME"},
		{Token: "-E", Action: Replace, To: "PPONLY"},
		{Token: "-a", Action: Replace, To: "DISASM"},
		{Token: "-s", Action: Replace, To: "DEBUG=FF", Note: "debug symbols fold into DEBUG=FF"},
	},
	{dialect.DICE, dialect.Lattice}: {
		{Token: "-O", Action: Replace, To: "-O"},
		{Token: "-d1", Action: Replace, To: "-d2"},
		{Token: "-ms", Action: Replace, To: "-ms"},
		{Token: "-D", Prefix: true, Action: PassThrough},
		{Token: "-I", Prefix: true, Action: PassThrough},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-a", Action: Replace, To: "-a"},
		{Token: "-s", Action: Replace, To: "-g", Note: "not reversible: Lattice -g maps to -s -d1"},
	},

	{dialect.GNUMake, dialect.SASC}: {
		{Token: "-O2", Action: Replace, To: "OPTIMIZE"},
		{Token: "-O", Action: Replace, To: "OPTIMIZE"},
		{Token: "-g", Action: Replace, To: "DEBUG=L"},
		{Token: "-m68000", Action: Replace, To: "DATA=NEAR"},
		{Token: "-I", Prefix: true, Action: Replace, Rewrite: incToSAS},
		{Token: "-D", Prefix: true, Action: Replace, Rewrite: defToSAS},
		{Token: "-v", Action: Replace, To: "VERBOSE"},
		{Token: "-w", Action: Replace, To: "IGN=A"},
		{Token: "-c", Action: Replace, To: "OBJNAME"},
		{Token: "-E", Action: Replace, To: "PPONLY"},
		{Token: "-S", Action: Replace, To: "DISASM"},
	},
	{dialect.GNUMake, dialect.DICE}: {
		{Token: "-O2", Action: Replace, To: "-O"},
		{Token: "-g", Action: Replace, To: "-d1"},
		{Token: "-m68000", Action: Replace, To: "-ms"},
		{Token: "-I", Prefix: true, Action: PassThrough},
		{Token: "-D", Prefix: true, Action: PassThrough},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-w", Action: Drop, Note: "DICE has no warning-suppression flag"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-S", Action: Replace, To: "-a"},
	},
	{dialect.GNUMake, dialect.Lattice}: {
		{Token: "-O2", Action: Replace, To: "-O"},
		{Token: "-g", Action: Replace, To: "-d2"},
		{Token: "-m68000", Action: Replace, To: "-ms"},
		{Token: "-I", Prefix: true, Action: PassThrough},
		{Token: "-D", Prefix: true, Action: PassThrough},
		{Token: "-v", Action: Replace, To: "-v"},
		{Token: "-w", Action: Replace, To: "-w"},
		{Token: "-c", Action: Replace, To: "-c"},
		{Token: "-E", Action: Replace, To: "-E"},
		{Token: "-S", Action: Replace, To: "-a"},
	},
}

// Decision records one mapping lookup for the conversion report. The review
// policy inspects these after conversion.
type Decision struct {
	Kind   string `json:"kind"` // "option", "command" or "compiler"
	From   string `json:"from"`
	To     string `json:"to"`
	Token  string `json:"token"`
	Action string `json:"action"`
	Result string `json:"result"`
	Note   string `json:"note"`
}

// lookup finds the first entry matching token in the (from, to) table.
func lookup(token string, from, to dialect.Dialect) (Entry, bool) {
	for _, e := range optionTables[pair{from, to}] {
		if e.Prefix {
			if strings.HasPrefix(token, e.Token) {
				return e, true
			}
			continue
		}
		if strings.EqualFold(token, e.Token) {
			return e, true
		}
	}
	return Entry{}, false
}

// Option translates a single flag token from one dialect's compiler to
// another's. The returned string is empty for dropped flags; an unrecognized
// flag comes back unchanged.
func Option(token string, from, to dialect.Dialect) (string, Decision) {
	d := Decision{Kind: "option", From: from.String(), To: to.String(), Token: token}

	e, ok := lookup(token, from, to)
	if !ok {
		d.Action = "unmatched"
		d.Result = token
		return token, d
	}

	d.Action = e.Action.String()
	d.Note = e.Note
	switch e.Action {
	case Drop:
		d.Result = ""
		return "", d
	case PassThrough:
		d.Result = token
		return token, d
	default:
		result := e.To
		if e.Rewrite != nil {
			result = e.Rewrite(token)
		}
		d.Result = result
		return result, d
	}
}

// Flags translates a whitespace-separated flag string token by token.
// Dropped flags vanish from the result; everything else keeps its relative
// order. from == to returns the input unchanged with no decisions.
func Flags(flags string, from, to dialect.Dialect) (string, []Decision) {
	if from == to {
		return flags, nil
	}

	var out []string
	var decisions []Decision
	for _, token := range strings.Fields(flags) {
		mapped, d := Option(token, from, to)
		decisions = append(decisions, d)
		if mapped != "" {
			out = append(out, mapped)
		}
	}
	return strings.Join(out, " "), decisions
}
