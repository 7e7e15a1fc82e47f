// GenMaki converts makefiles between the GNU Make, SAS/C, DICE and Lattice
// dialects.
//
// The pipeline: detect the source dialect (unless the file's dialect is
// unambiguous from a -format run), parse the file into a dialect-neutral
// model, validate the model against its CUE contract, emit it in the target
// dialect through the option/command mapping tables, then run the review
// rules over the mapping decisions and report anything that needs human
// attention.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/amigazen/gen/internal/config"
	"github.com/amigazen/gen/internal/convert"
	"github.com/amigazen/gen/internal/detect"
	"github.com/amigazen/gen/internal/dialect"
	"github.com/amigazen/gen/internal/makefile"
	"github.com/amigazen/gen/internal/parser"
	"github.com/amigazen/gen/internal/policy"
)

var log = commonlog.GetLogger("genmaki")

func main() {
	from := flag.String("from", "", "input makefile (auto-discovers conventional file names if not specified)")
	to := flag.String("to", "", "output file name (standard output if not specified)")
	format := flag.String("format", "", "target format alias (defaults per source dialect)")
	configPath := flag.String("config", "", "configuration file (default: genmaki.json search path)")
	verbose := flag.Bool("verbose", false, "trace parsing and conversion decisions")
	initConfig := flag.Bool("init", false, "write a default genmaki.json and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	if *initConfig {
		runInit()
		return
	}

	if err := run(*from, *to, *format, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "GenMaki: %v\n", err)
		os.Exit(1)
	}
}

func run(from, to, format, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Input acquisition: explicit path, or discovery among the conventional
	// names. Finding more than one candidate is an error; the user must
	// choose.
	input := from
	if input == "" {
		input, err = makefile.Discover(".", cfg.Discovery.Candidates)
		if err != nil {
			return err
		}
		log.Infof("discovered %s", input)
	}

	source := detect.File(input)
	if source == dialect.Unknown {
		return fmt.Errorf("unable to determine makefile format for %s", input)
	}

	target := dialect.Unknown
	if format != "" {
		target, err = dialect.ParseAlias(format)
	} else {
		target, err = cfg.TargetFor(source)
	}
	if err != nil {
		return err
	}
	log.Infof("converting %s: %s to %s", input, source, target)

	m, err := parser.File(input, source)
	if err != nil {
		return err
	}

	engine, err := convert.New()
	if err != nil {
		return err
	}

	report, err := engine.ConvertFile(m, target, to)
	if err != nil {
		return err
	}

	if cfg.ReviewEnabled() {
		if err := review(cfg, report); err != nil {
			return err
		}
	}

	if to != "" {
		fmt.Fprintf(os.Stderr, "GenMaki: converted %s to %s (%s)\n", input, to, target)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// review evaluates the post-conversion rules and prints the findings to
// stderr, honoring configured severities. Findings never change the
// converted output or the exit status.
func review(cfg *config.Config, report *convert.Report) error {
	engine, err := policy.New()
	if err != nil {
		return fmt.Errorf("building review engine: %w", err)
	}

	result, err := engine.Evaluate(context.Background(), policy.Input{
		Decisions:  report.Decisions,
		EmptyRules: report.EmptyRules,
	})
	if err != nil {
		return fmt.Errorf("evaluating review rules: %w", err)
	}

	for _, f := range result.Findings {
		severity := cfg.CheckSeverity(f.Check, f.Severity)
		if severity == "off" {
			continue
		}
		fmt.Fprintf(os.Stderr, "GenMaki: %s: %s\n", severity, f.Message)
	}
	if result.Summary.Total > 0 {
		log.Infof("review: %d findings (%d warnings, %d info)",
			result.Summary.Total, result.Summary.Warnings, result.Summary.Info)
	}
	return nil
}

func runInit() {
	configPath := "genmaki.json"

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "GenMaki: %s already exists\n", configPath)
		os.Exit(1)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "GenMaki: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s\n", configPath)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: genmaki [options]

Options:
  -from file     Input makefile (auto-discovers if not specified)
  -to file       Output file name (standard output if not specified)
  -format name   Target format (defaults per source dialect)
  -config file   Configuration file
  -verbose       Trace parsing and conversion decisions
  -init          Write a default genmaki.json and exit

Supported formats:
  smake, smakefile, sasc    SAS/C SMakefile
  dmake, dmakefile, dice    DICE dmakefile
  makefile, make, gnu, gcc  GNU Makefile
  lmk, lmkfile, lattice     Lattice lmkfile

Default conversions:
  GNU Makefile    -> SAS/C SMakefile
  Lattice lmkfile -> SAS/C SMakefile
  DICE dmakefile  -> GNU Makefile
  SAS/C smakefile -> GNU Makefile

Examples:
  genmaki                                # auto-detect and convert to stdout
  genmaki -from makefile -format sasc    # convert to SAS/C format
  genmaki -from lmkfile -to Makefile     # convert to a GNU Makefile`)
}
