package mapping

import (
	"strings"

	"github.com/amigazen/gen/internal/dialect"
)

// CompilerName is each dialect's default compiler invocation name. GNU Make
// output deliberately uses the portable "cc" rather than "gcc".
func CompilerName(d dialect.Dialect) string {
	switch d {
	case dialect.GNUMake:
		return "cc"
	case dialect.SASC:
		return "sc"
	case dialect.DICE:
		return "dcc"
	case dialect.Lattice:
		return "lc"
	default:
		return ""
	}
}

// knownCompilers are the compiler names a CC-style variable may carry; any of
// them is rewritten to the target dialect's default compiler.
var knownCompilers = map[string]bool{
	"gcc": true, "cc": true, "sc": true, "dcc": true, "lc": true,
}

// native reports whether a compiler name already belongs to the target
// dialect. GNU output accepts both gcc and cc.
func native(value string, to dialect.Dialect) bool {
	if to == dialect.GNUMake && strings.EqualFold(value, "gcc") {
		return true
	}
	return strings.EqualFold(value, CompilerName(to))
}

// Compiler rewrites a compiler-variable value to the target dialect's default
// compiler alias. Values that are not a recognized compiler name, or that
// already belong to the target dialect, come back unchanged.
func Compiler(value string, to dialect.Dialect) (string, Decision) {
	d := Decision{Kind: "compiler", To: to.String(), Token: value}
	if knownCompilers[strings.ToLower(value)] && !native(value, to) {
		d.Action = "replace"
		d.Result = CompilerName(to)
		return d.Result, d
	}
	d.Action = "pass_through"
	d.Result = value
	return value, d
}

// Command translates one recipe line's program invocation for the target
// dialect. The program is the first whitespace-delimited token; everything
// after it is handled per rewrite rule. Unrecognized programs pass through
// unchanged, arguments and all.
func Command(command string, from, to dialect.Dialect) (string, Decision) {
	d := Decision{Kind: "command", From: from.String(), To: to.String()}

	program, rest, _ := strings.Cut(strings.TrimSpace(command), " ")
	rest = strings.TrimSpace(rest)
	d.Token = program

	switch strings.ToLower(program) {
	case "gcc", "cc", "sc", "dcc", "lc":
		if native(program, to) || to == dialect.Unknown {
			break
		}
		d.Action = "replace"
		d.Result = joinCommand(CompilerName(to), rest)
		// SAS/C's sc writes objects next to sources unless told otherwise;
		// the OBJNAME argument keeps the recipe equivalent.
		if to == dialect.SASC {
			d.Result += " OBJNAME=$*.o"
		}
		return d.Result, d

	case "blink":
		if to == dialect.SASC {
			d.Action = "replace"
			d.Result = joinCommand("slink", rest)
			return d.Result, d
		}

	case "slink":
		if to == dialect.GNUMake {
			// Linker-argument translation is intentionally simplified: the
			// original never parsed slink arguments and neither do we. The
			// placeholder is flagged for manual review by the policy rules.
			d.Action = "replace"
			d.Result = "cc -o program"
			d.Note = "simplified link translation, review output"
			return d.Result, d
		}

	case "rm":
		if to == dialect.GNUMake {
			break
		}
		args := stripLeadingFlags(rest)
		switch to {
		case dialect.SASC:
			// The Amiga delete command has no wildcard expansion; wildcard
			// arguments are dropped rather than passed through broken.
			d.Action = "replace"
			d.Result = joinCommand("delete", dropWildcards(args)) + " QUIET"
			d.Note = "wildcard arguments dropped"
		case dialect.DICE:
			d.Action = "replace"
			d.Result = joinCommand("delete", args)
		case dialect.Lattice:
			d.Action = "replace"
			d.Result = joinCommand("Delete", args)
		}
		if d.Result != "" {
			return d.Result, d
		}
	}

	d.Action = "pass_through"
	d.Result = command
	return command, d
}

func joinCommand(program, rest string) string {
	if rest == "" {
		return program
	}
	return program + " " + rest
}

// stripLeadingFlags removes leading -x style flags (rm -f, rm -rf) which the
// Amiga delete commands do not accept.
func stripLeadingFlags(args string) string {
	fields := strings.Fields(args)
	for len(fields) > 0 && strings.HasPrefix(fields[0], "-") {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// dropWildcards removes arguments containing * or ? patterns.
func dropWildcards(args string) string {
	var kept []string
	for _, f := range strings.Fields(args) {
		if strings.ContainsAny(f, "*?") {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
