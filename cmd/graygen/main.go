// Command graygen writes a generalized reflected gray code to a file.
//
//	graygen [flags] N,K
//	graygen [flags] N K
//	echo N,K | graygen [flags]
//
// N is the number of digit positions and K the radix. On success a single
// timing line is printed to standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"example.com/graycode/internal/codefile"
	"example.com/graycode/internal/common"
	"example.com/graycode/internal/config"
	"example.com/graycode/internal/gray"
	"example.com/graycode/internal/input"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInputIO = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	out         string
	manifest    string
	history     string
	reportJSON  string
	reportPDF   string
	quiet       bool
	positionals []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("graygen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file (default "+config.DefaultPath+" when present)")
	fs.StringVar(&opts.out, "out", "", "output file (default "+codefile.DefaultFileName+")")
	fs.StringVar(&opts.manifest, "manifest", "", "write a sha256 manifest of the produced files")
	fs.StringVar(&opts.history, "history", "", "append a JSONL record of the run")
	fs.StringVar(&opts.reportJSON, "report-json", "", "write a JSON run report")
	fs.StringVar(&opts.reportPDF, "report-pdf", "", "write a PDF run report")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress log output on stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `graygen [flags] N,K | N K
  reads "N,K" from standard input when no arguments are given

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.positionals = fs.Args()
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	path, explicit := opts.configPath, opts.configPath != ""
	if !explicit {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return cfg, err
	}
	if opts.out != "" {
		cfg.Output = opts.out
	}
	if opts.manifest != "" {
		cfg.Manifest = opts.manifest
	}
	if opts.history != "" {
		cfg.History = opts.history
	}
	if opts.reportJSON != "" {
		cfg.Report.JSON = opts.reportJSON
	}
	if opts.reportPDF != "" {
		cfg.Report.PDF = opts.reportPDF
	}
	if opts.quiet {
		cfg.Quiet = true
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitFailure
	}
	logOpts := cfg.LogOptions()
	logOpts.Console = stderr
	if cfg.Quiet {
		logOpts.Console = io.Discard
	}
	closer, err := common.SetupLogging(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "setup logging: %v\n", err)
		return exitFailure
	}
	defer closer.Close()

	params, err := input.Acquire(input.SourceFor(opts.positionals, stdin))
	if err != nil {
		var shape *input.ShapeError
		switch {
		case errors.As(err, &shape):
			fmt.Fprintln(stdout, shape.Error())
			return exitOK
		case errors.Is(err, input.ErrRead):
			fmt.Fprintln(stderr, err)
			return exitInputIO
		default:
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	m := common.NewMetrics()
	m.Start(common.PhaseCompute)
	table, err := gray.Generate(params.NumBits, params.Radix)
	m.Stop(common.PhaseCompute)
	if err != nil {
		fmt.Fprintf(stderr, "generate: %v\n", err)
		return exitFailure
	}
	m.AddRows(table.Rows())
	common.Logf("generated %s words of %d digits in radix %d", common.FormatCount(int64(table.Rows())), params.NumBits, params.Radix)

	m.Start(common.PhaseWrite)
	n, err := codefile.WriteFile(cfg.Output, table)
	m.Stop(common.PhaseWrite)
	m.AddBytes(n)
	if err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return exitFailure
	}
	snap := m.Snapshot()
	common.Logf("wrote %s to %s (%.2f MiB/s)", common.FormatBytes(snap.Bytes), cfg.Output, snap.ThroughputBytesPerSecond()/(1024*1024))
	fmt.Fprintln(stdout, snap.TimingLine())

	if err := writeArtifacts(cfg, params, table, snap); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	return exitOK
}
