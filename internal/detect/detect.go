// Package detect identifies which makefile dialect a file is written in by
// scanning it for dialect-specific syntax fragments.
package detect

import (
	"bufio"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/amigazen/gen/internal/dialect"
)

var log = commonlog.GetLogger("genmaki.detect")

// maxLines bounds the scan to the first 50 non-empty, non-comment lines.
const maxLines = 50

// Signature fragments per dialect. A line containing any fragment sets that
// dialect's flag. These are substring probes, not parses: the dialects are
// mutually ambiguous and detection is a heuristic.
var (
	gnuSignatures     = []string{"%.o:", "$@", "$<", "$^", "CC=gcc", "CC = gcc"}
	diceSignatures    = []string{"%(left)", "%(right)", "::"}
	sasSignatures     = []string{".c.o:", "$*.o", "OBJNAME=", "slink"}
	latticeSignatures = []string{"blink", "lc ", "WITH"}
)

// File reads up to the first 50 non-empty, non-comment lines of the named
// file and returns its best-guess dialect. When fragments of several dialects
// appear, the fixed precedence is DICE, then GNU Make, then SAS/C, then
// Lattice; that order is load-bearing for deterministic detection of
// ambiguous input. Returns Unknown when no signature is found or the file
// cannot be opened.
func File(filename string) dialect.Dialect {
	f, err := os.Open(filename)
	if err != nil {
		log.Infof("cannot open %s: %s", filename, err.Error())
		return dialect.Unknown
	}
	defer f.Close()

	var foundGNU, foundDICE, foundSAS, foundLattice bool

	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() && lines < maxLines {
		trimmed := strings.TrimSpace(scanner.Text())
		// Only # lines are skipped as comments. A ; line is a comment in two
		// of the dialects but is still scanned for signatures: a SAS/C or
		// Lattice file may mention slink or blink only in its ; header.
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if containsAny(trimmed, gnuSignatures) {
			foundGNU = true
		}
		if containsAny(trimmed, diceSignatures) {
			foundDICE = true
		}
		if containsAny(trimmed, sasSignatures) {
			foundSAS = true
		}
		if containsAny(trimmed, latticeSignatures) {
			foundLattice = true
		}
		lines++
	}

	switch {
	case foundDICE:
		log.Infof("%s: DICE syntax detected", filename)
		return dialect.DICE
	case foundGNU:
		log.Infof("%s: GNU Make syntax detected", filename)
		return dialect.GNUMake
	case foundSAS:
		log.Infof("%s: SAS/C syntax detected", filename)
		return dialect.SASC
	case foundLattice:
		log.Infof("%s: Lattice syntax detected", filename)
		return dialect.Lattice
	default:
		log.Infof("%s: no dialect signature found", filename)
		return dialect.Unknown
	}
}

func containsAny(line string, fragments []string) bool {
	for _, frag := range fragments {
		if strings.Contains(line, frag) {
			return true
		}
	}
	return false
}
