package mapping

import (
	"testing"

	"github.com/amigazen/gen/internal/dialect"
)

func TestOptionReplacements(t *testing.T) {
	cases := []struct {
		token string
		from  dialect.Dialect
		to    dialect.Dialect
		want  string
	}{
		{"-O2", dialect.GNUMake, dialect.SASC, "OPTIMIZE"},
		{"-g", dialect.GNUMake, dialect.SASC, "DEBUG=L"},
		{"-O", dialect.Lattice, dialect.SASC, "OPTIMIZE"},
		{"-g", dialect.Lattice, dialect.SASC, "DEBUG=FF"},
		{"OPTIMIZE", dialect.SASC, dialect.GNUMake, "-O2"},
		{"DEBUG=L", dialect.SASC, dialect.GNUMake, "-g"},
		{"-O", dialect.DICE, dialect.GNUMake, "-O2"},
		{"-d1", dialect.DICE, dialect.Lattice, "-d2"},
		{"-a", dialect.Lattice, dialect.GNUMake, "-S"},
		{"-S", dialect.GNUMake, dialect.Lattice, "-a"},
	}
	for _, c := range cases {
		got, d := Option(c.token, c.from, c.to)
		if got != c.want {
			t.Fatalf("Option(%q, %s, %s) = %q, want %q", c.token, c.from, c.to, got, c.want)
		}
		if d.Action != "replace" {
			t.Fatalf("Option(%q, %s, %s) action = %q, want replace", c.token, c.from, c.to, d.Action)
		}
	}
}

func TestOptionTablesAreNotSymmetric(t *testing.T) {
	// One Lattice debug flag expands to two DICE flags, but the DICE
	// debug-symbols flag alone maps back to a single flag.
	got, _ := Option("-g", dialect.Lattice, dialect.DICE)
	if got != "-s -d1" {
		t.Fatalf("Lattice -g to DICE = %q, want \"-s -d1\"", got)
	}
	back, _ := Option("-s", dialect.DICE, dialect.Lattice)
	if back != "-g" {
		t.Fatalf("DICE -s to Lattice = %q, want \"-g\"", back)
	}
}

func TestOptionPrefixRewrites(t *testing.T) {
	got, _ := Option("-Iinclude", dialect.GNUMake, dialect.SASC)
	if got != "INCLUDEDIR=include:" {
		t.Fatalf("include rewrite = %q", got)
	}
	got, _ = Option("INCLUDEDIR=include:", dialect.SASC, dialect.GNUMake)
	if got != "-Iinclude" {
		t.Fatalf("include reverse rewrite = %q", got)
	}
	got, _ = Option("-DDEBUG", dialect.GNUMake, dialect.SASC)
	if got != "DEF=DEBUG" {
		t.Fatalf("define rewrite = %q", got)
	}
	got, _ = Option("DEF=DEBUG", dialect.SASC, dialect.Lattice)
	if got != "-DDEBUG" {
		t.Fatalf("define reverse rewrite = %q", got)
	}
}

func TestOptionExactMatchBeatsPrefix(t *testing.T) {
	// -DNONAMES must hit its own entry, not the -D prefix rewrite.
	got, d := Option("-DNONAMES", dialect.Lattice, dialect.SASC)
	if got != "NOSTANDARDIO" {
		t.Fatalf("-DNONAMES = %q (action %s), want NOSTANDARDIO", got, d.Action)
	}
	got, _ = Option("-d2", dialect.Lattice, dialect.SASC)
	if got != "DEBUG=L" {
		t.Fatalf("-d2 = %q, want DEBUG=L", got)
	}
}

func TestPrefixMatchIsCaseSensitive(t *testing.T) {
	// -d1 has no exact entry in the Lattice tables and must not fall into
	// the -D define prefix; it passes through unmatched.
	got, d := Option("-d1", dialect.Lattice, dialect.SASC)
	if got != "-d1" {
		t.Fatalf("Lattice -d1 = %q, want unchanged", got)
	}
	if d.Action != "unmatched" {
		t.Fatalf("Lattice -d1 action = %q, want unmatched", d.Action)
	}
}

func TestOptionDropReturnsEmpty(t *testing.T) {
	got, d := Option("-w", dialect.GNUMake, dialect.DICE)
	if got != "" || d.Action != "drop" {
		t.Fatalf("dropped flag = %q action %q", got, d.Action)
	}
}

func TestOptionUnmatchedPassesThrough(t *testing.T) {
	got, d := Option("-funroll-loops", dialect.GNUMake, dialect.SASC)
	if got != "-funroll-loops" {
		t.Fatalf("unmatched flag = %q, want unchanged", got)
	}
	if d.Action != "unmatched" {
		t.Fatalf("unmatched flag action = %q", d.Action)
	}
}

func TestOptionMatchIsCaseInsensitive(t *testing.T) {
	got, _ := Option("optimize", dialect.SASC, dialect.GNUMake)
	if got != "-O2" {
		t.Fatalf("lowercase OPTIMIZE = %q, want -O2", got)
	}
}

func TestFlagsMapsTokensInOrder(t *testing.T) {
	got, decisions := Flags("-O2 -Iinclude -w", dialect.GNUMake, dialect.SASC)
	if got != "OPTIMIZE INCLUDEDIR=include: IGN=A" {
		t.Fatalf("Flags = %q", got)
	}
	if len(decisions) != 3 {
		t.Fatalf("got %d decisions, want 3", len(decisions))
	}
}

func TestFlagsDropsVanish(t *testing.T) {
	got, _ := Flags("-O2 -w -g", dialect.GNUMake, dialect.DICE)
	if got != "-O -d1" {
		t.Fatalf("Flags = %q, want \"-O -d1\"", got)
	}
}

func TestFlagsSameDialectUnchanged(t *testing.T) {
	got, decisions := Flags("-O2 -Wall -mystery", dialect.GNUMake, dialect.GNUMake)
	if got != "-O2 -Wall -mystery" {
		t.Fatalf("self-conversion changed flags: %q", got)
	}
	if decisions != nil {
		t.Fatalf("self-conversion produced decisions: %v", decisions)
	}
}

func TestEveryOrderedPairHasATable(t *testing.T) {
	all := []dialect.Dialect{dialect.GNUMake, dialect.SASC, dialect.DICE, dialect.Lattice}
	for _, from := range all {
		for _, to := range all {
			if from == to {
				continue
			}
			if len(optionTables[pair{from, to}]) == 0 {
				t.Fatalf("no option table for %s to %s", from, to)
			}
		}
	}
}
