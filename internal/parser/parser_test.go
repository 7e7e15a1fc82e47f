package parser

import (
	"strings"
	"testing"

	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/makefile"
)

func parse(t *testing.T, content string, d dialect.Dialect) *makefile.Makefile {
	t.Helper()
	m, err := Parse(strings.NewReader(content), "test", d)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestParseGNUMakefile(t *testing.T) {
	m := parse(t, `# Build settings
CC = gcc
CFLAGS = -O2 -Wall

program: main.o utils.o
	$(CC) -o program main.o utils.o

%.o: %.c
	$(CC) $(CFLAGS) -c $< -o $@
`, dialect.GNUMake)

	if len(m.Variables) != 2 {
		t.Fatalf("got %d variables, want 2", len(m.Variables))
	}
	if m.Variables[0].Name != "CC" || m.Variables[0].Value != "gcc" {
		t.Fatalf("first variable = %q=%q", m.Variables[0].Name, m.Variables[0].Value)
	}
	if m.Variables[0].Immediate {
		t.Fatal("GNU variables are not immediate")
	}
	if len(m.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(m.Rules))
	}
	if m.Rules[0].Targets != "program" || m.Rules[0].Dependencies != "main.o utils.o" {
		t.Fatalf("first rule = %q: %q", m.Rules[0].Targets, m.Rules[0].Dependencies)
	}
	if m.Rules[0].PatternRule {
		t.Fatal("plain rule flagged as pattern rule")
	}
	if !m.Rules[1].PatternRule {
		t.Fatal("wildcard rule not flagged as pattern rule")
	}
	if len(m.Rules[1].Commands) != 1 || m.Rules[1].Commands[0].Text != "$(CC) $(CFLAGS) -c $< -o $@" {
		t.Fatalf("pattern rule commands = %+v", m.Rules[1].Commands)
	}
	if len(m.Comments) != 1 || m.Comments[0] != "# Build settings" {
		t.Fatalf("comments = %v", m.Comments)
	}
}

func TestParseDICEDoubleColonAndImmediateVars(t *testing.T) {
	m := parse(t, `CC = dcc

all :: program

program: main.o
	dcc -o program main.o
`, dialect.DICE)

	if len(m.Variables) != 1 || !m.Variables[0].Immediate {
		t.Fatal("DICE variables resolve at definition time")
	}
	if len(m.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(m.Rules))
	}
	if !m.Rules[0].FormVariant {
		t.Fatal(":: rule not flagged as form variant")
	}
	if m.Rules[0].Targets != "all" || m.Rules[0].Dependencies != "program" {
		t.Fatalf(":: rule = %q :: %q", m.Rules[0].Targets, m.Rules[0].Dependencies)
	}
	if m.Rules[1].FormVariant {
		t.Fatal("single-colon rule flagged as form variant")
	}
}

func TestParseSASDotRule(t *testing.T) {
	m := parse(t, `CC = sc

.c.o:
	sc -c $*.c OBJNAME=$*.o
`, dialect.SASC)

	if len(m.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(m.Rules))
	}
	r := m.Rules[0]
	if !r.PatternRule || r.Targets != "*.o" || r.Dependencies != "*.c" {
		t.Fatalf("dot rule = %+v", r)
	}
	if len(r.Commands) != 1 || r.Commands[0].Text != "sc -c $*.c OBJNAME=$*.o" {
		t.Fatalf("dot rule commands = %+v", r.Commands)
	}
}

func TestParseLatticeContinuationsAndWith(t *testing.T) {
	m := parse(t, `CC = lc

program: main.o \
utils.o
	blink main.o utils.o TO program
WITH
NODEBUG
SMALLCODE

clean:
	delete program
`, dialect.Lattice)

	if len(m.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(m.Rules))
	}
	// The continuation joins the dependency list into the rule header.
	if m.Rules[0].Dependencies != "main.o utils.o" {
		t.Fatalf("dependencies = %q", m.Rules[0].Dependencies)
	}
	// WITH block lines land on the last rule's recipe.
	got := make([]string, 0, len(m.Rules[0].Commands))
	for _, c := range m.Rules[0].Commands {
		got = append(got, c.Text)
	}
	want := []string{"blink main.o utils.o TO program", "NODEBUG", "SMALLCODE"}
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("command %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSemicolonComments(t *testing.T) {
	m := parse(t, "; SMakefile for project\nCC = sc\n", dialect.SASC)
	if len(m.Comments) != 1 || m.Comments[0] != "; SMakefile for project" {
		t.Fatalf("comments = %v", m.Comments)
	}
}

func TestBlankLineClosesRule(t *testing.T) {
	m := parse(t, `program: main.o
	cc -o program main.o

	cc -orphaned
`, dialect.GNUMake)

	if len(m.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(m.Rules))
	}
	// The orphaned command after the blank line is dropped, not appended.
	if len(m.Rules[0].Commands) != 1 {
		t.Fatalf("commands = %+v", m.Rules[0].Commands)
	}
}

func TestCommentDoesNotCloseRule(t *testing.T) {
	m := parse(t, `program: main.o
# link step
	cc -o program main.o
`, dialect.GNUMake)

	if len(m.Rules[0].Commands) != 1 {
		t.Fatalf("commands = %+v, want the command after the comment", m.Rules[0].Commands)
	}
}

func TestRecipeLineWithEqualsStaysACommand(t *testing.T) {
	m := parse(t, `.c.o:
	sc -c $*.c OBJNAME=$*.o INCLUDEDIR=include:
`, dialect.SASC)

	if len(m.Variables) != 0 {
		t.Fatalf("recipe text parsed as variables: %+v", m.Variables)
	}
	if len(m.Rules) != 1 || len(m.Rules[0].Commands) != 1 {
		t.Fatalf("rules = %+v", m.Rules)
	}
}

func TestIndentedAssignmentUnderRuleIsACommand(t *testing.T) {
	m := parse(t, `all: main.o
	gcc -c main.c
	X=1
`, dialect.GNUMake)

	if len(m.Variables) != 0 {
		t.Fatalf("indented assignment parsed as variable: %+v", m.Variables)
	}
	if len(m.Rules) != 1 || len(m.Rules[0].Commands) != 2 {
		t.Fatalf("rules = %+v", m.Rules)
	}
	if m.Rules[0].Commands[1].Text != "X=1" {
		t.Fatalf("second command = %q, want X=1", m.Rules[0].Commands[1].Text)
	}
}

func TestQuotedVariableValueUnquoted(t *testing.T) {
	m := parse(t, "CFLAGS = \"-O2 -Wall\"\n", dialect.GNUMake)
	if m.Variables[0].Value != "-O2 -Wall" {
		t.Fatalf("value = %q", m.Variables[0].Value)
	}
}

func TestDuplicateDefinitionsPreserved(t *testing.T) {
	m := parse(t, "CC = gcc\nCC = cc\n\nall: a\n\nall: b\n", dialect.GNUMake)
	if len(m.Variables) != 2 {
		t.Fatalf("got %d variables, want both CC definitions", len(m.Variables))
	}
	if len(m.Rules) != 2 {
		t.Fatalf("got %d rules, want both all rules", len(m.Rules))
	}
}

func TestUnknownDialectRejected(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), "test", dialect.Unknown); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}
