// Package parser reads a makefile in a known dialect and populates the
// dialect-neutral structural model.
//
// All four dialects share one line-oriented state machine; a per-dialect
// profile supplies the comment leader, the pattern-rule signatures, and the
// two Lattice-only features (backslash continuation joining and WITH linker
// blocks). Parsing never fails on line content: lines that match no case are
// dropped silently and an unterminated rule simply keeps whatever commands it
// accumulated when input ends.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/makefile"
)

var log = commonlog.GetLogger("genmaki.parser")

// profile parameterizes the shared state machine per dialect.
type profile struct {
	commentLeader string
	immediateVars bool   // variables resolve at definition time (DICE)
	doubleColon   bool   // recognize the :: rule form (DICE)
	dotRules      bool   // recognize .c.o: / .s.o: pattern rules (SAS/C, Lattice)
	wildcard      string // token marking a pattern rule in a plain rule header
	continuations bool   // join trailing-backslash lines before processing (Lattice)
	withBlocks    bool   // post-rule WITH linker-options blocks (Lattice)
}

var profiles = map[dialect.Dialect]profile{
	dialect.GNUMake: {commentLeader: "#", wildcard: "%"},
	dialect.SASC:    {commentLeader: ";", dotRules: true},
	dialect.DICE:    {commentLeader: "#", immediateVars: true, doubleColon: true},
	dialect.Lattice: {commentLeader: ";", dotRules: true, continuations: true, withBlocks: true},
}

// File opens and parses the named makefile as dialect d. An unreadable file
// is fatal for the whole conversion.
func File(filename string, d dialect.Dialect) (*makefile.Makefile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	return Parse(f, filename, d)
}

// Parse reads makefile text from r and returns the populated model. The
// filename is recorded in the model for diagnostics only.
func Parse(r io.Reader, filename string, d dialect.Dialect) (*makefile.Makefile, error) {
	p, ok := profiles[d]
	if !ok {
		return nil, fmt.Errorf("no parser for dialect %s", d)
	}

	m := makefile.New(filename, d)

	lines, err := readLines(r, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var current *makefile.Rule
	inWith := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")

		// Blank line: closes an open WITH block, otherwise the open rule.
		if trimmed == "" {
			if inWith {
				inWith = false
			} else {
				current = nil
			}
			continue
		}

		// Comment: stored verbatim, does not close the open rule.
		if strings.HasPrefix(trimmed, p.commentLeader) {
			m.AddComment(trimmed)
			continue
		}

		// WITH opens a linker-options block whose lines belong to the rule
		// emitted last.
		if p.withBlocks && strings.EqualFold(trimmed, "WITH") {
			inWith = true
			continue
		}

		// Indented line under an open rule: one recipe command. Checked
		// before the assignment and rule-header cases so that recipe text
		// containing = or : is never mistaken for either.
		if current != nil && indented {
			current.AddCommand(trimmed)
			continue
		}

		// Variable assignment. A line with both = and : is not an
		// assignment; it falls through to the rule cases.
		if strings.Contains(trimmed, "=") && !strings.Contains(trimmed, ":") {
			name, value, _ := strings.Cut(trimmed, "=")
			m.AddVariable(strings.TrimSpace(name), unquote(strings.TrimSpace(value)), p.immediateVars)
			log.Debugf("%s: variable %s", filename, strings.TrimSpace(name))
			current = nil
			continue
		}

		// Dot rules (.c.o: style) become pattern rules with placeholder
		// target/dependency strings; the emitter renders the target
		// dialect's native pattern form instead.
		if p.dotRules && (strings.Contains(trimmed, ".c.o:") || strings.Contains(trimmed, ".s.o:")) {
			current = m.AddRule(makefile.Rule{Targets: "*.o", Dependencies: "*.c", PatternRule: true})
			continue
		}

		// The DICE :: form is checked before the single-colon rule case.
		if p.doubleColon && strings.Contains(trimmed, "::") {
			targets, deps, _ := strings.Cut(trimmed, "::")
			current = m.AddRule(makefile.Rule{
				Targets:      strings.TrimSpace(targets),
				Dependencies: strings.TrimSpace(deps),
				FormVariant:  true,
			})
			continue
		}

		if strings.Contains(trimmed, ":") {
			targets, deps, _ := strings.Cut(trimmed, ":")
			targets = strings.TrimSpace(targets)
			current = m.AddRule(makefile.Rule{
				Targets:      targets,
				Dependencies: strings.TrimSpace(deps),
				PatternRule:  p.wildcard != "" && strings.Contains(targets, p.wildcard),
			})
			log.Debugf("%s: rule %s", filename, targets)
			continue
		}

		// Inside a WITH block every remaining line is a linker option,
		// appended to the last rule's recipe.
		if inWith {
			if n := len(m.Rules); n > 0 {
				m.Rules[n-1].AddCommand(trimmed)
			}
			continue
		}

		// Anything else is dropped silently and closes the open rule.
		current = nil
	}

	log.Infof("%s: parsed %d variables, %d rules, %d comments",
		filename, len(m.Variables), len(m.Rules), len(m.Comments))
	return m, nil
}

// readLines returns the logical lines of r. For dialects with backslash
// continuation, physical lines ending in \ are joined with their successors
// before any other processing.
func readLines(r io.Reader, p profile) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	var joined strings.Builder
	continuing := false

	for scanner.Scan() {
		line := scanner.Text()
		if p.continuations && strings.HasSuffix(line, "\\") {
			joined.WriteString(strings.TrimSuffix(line, "\\"))
			continuing = true
			continue
		}
		if continuing {
			joined.WriteString(line)
			lines = append(lines, joined.String())
			joined.Reset()
			continuing = false
			continue
		}
		lines = append(lines, line)
	}
	if continuing {
		lines = append(lines, joined.String())
	}
	return lines, scanner.Err()
}

// unquote strips one layer of surrounding double quotes from a variable
// value, if present.
func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
