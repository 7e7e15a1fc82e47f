// Package makefile holds the dialect-neutral structural model that every
// parser populates and every emitter consumes, plus discovery of conventional
// makefile names in a directory.
//
// The model is deliberately loose: targets and dependencies stay as raw
// strings, variables are an ordered non-deduplicating sequence, and nothing is
// resolved or expanded. Translation between dialects is syntactic
// substitution over this model, not semantic recombination.
package makefile

import "github.com/amigazen/gen/internal/dialect"

// Variable is a single name=value assignment, in file order. Immediate marks
// DICE variables, which the DICE tools resolve at definition time; the flag is
// carried through but never re-evaluated here.
type Variable struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Immediate bool   `json:"immediate"`
}

// Command is one recipe line of a rule. Continuation is reserved for joined
// physical lines; today every parser emits it false.
type Command struct {
	Text         string `json:"text"`
	Continuation bool   `json:"continuation"`
}

// Rule is one target:dependency rule with its recipe. Targets and
// Dependencies are stored untokenized, exactly as written after trimming.
// PatternRule marks wildcard rules (GNU %-rules, SAS/C and Lattice dot
// rules). FormVariant marks the DICE :: rule form.
type Rule struct {
	Targets      string    `json:"targets"`
	Dependencies string    `json:"dependencies"`
	Commands     []Command `json:"commands"`
	PatternRule  bool      `json:"pattern_rule"`
	FormVariant  bool      `json:"form_variant"`
}

// AddCommand appends one recipe line to the rule.
func (r *Rule) AddCommand(text string) {
	r.Commands = append(r.Commands, Command{Text: text})
}

// Makefile is the root aggregate produced by one parse. It is owned by a
// single conversion: populated by one parser, walked by one engine, then
// discarded. Later definitions never overwrite earlier ones; insertion order
// is the only order.
type Makefile struct {
	Dialect   dialect.Dialect `json:"-"`
	Filename  string          `json:"filename"`
	Variables []Variable      `json:"variables"`
	Rules     []Rule          `json:"rules"`
	Comments  []string        `json:"comments"`
}

// New returns an empty model for the given file and dialect.
func New(filename string, d dialect.Dialect) *Makefile {
	return &Makefile{Dialect: d, Filename: filename}
}

// AddVariable appends a variable definition, never replacing an earlier one
// with the same name.
func (m *Makefile) AddVariable(name, value string, immediate bool) {
	m.Variables = append(m.Variables, Variable{Name: name, Value: value, Immediate: immediate})
}

// AddRule appends a rule and returns a pointer to the stored copy so the
// parser can keep attaching commands to it while it stays open.
func (m *Makefile) AddRule(r Rule) *Rule {
	m.Rules = append(m.Rules, r)
	return &m.Rules[len(m.Rules)-1]
}

// AddComment stores a comment line verbatim (leader included).
func (m *Makefile) AddComment(line string) {
	m.Comments = append(m.Comments, line)
}
