package makefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCandidates is the conventional set of makefile names probed when no
// input file is given. Several case variants appear because the tool's home
// filesystems are case-insensitive and any of these spellings occur in the
// wild.
var DefaultCandidates = []string{
	"makefile", "Makefile", "MAKEFILE", "GNUmakefile",
	"smakefile", "SMakefile", "SMAKEFILE",
	"dmakefile", "Dmakefile", "DMAKEFILE",
	"lmkfile", "LMKFILE",
}

// Discover probes dir for conventional makefile names from candidates and
// returns the single match. No match and more than one match are both
// errors; ambiguity requires the user to pick a file explicitly.
func Discover(dir string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	var found []string
	var infos []os.FileInfo
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		// A case-insensitive filesystem reports several candidate spellings
		// for the same file; count it once.
		duplicate := false
		for _, prev := range infos {
			if os.SameFile(prev, info) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		infos = append(infos, info)
		found = append(found, path)
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no makefile found in %s", dir)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("multiple makefiles found, specify one explicitly:\n  %s",
			strings.Join(found, "\n  "))
	}
}
