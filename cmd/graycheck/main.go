// Command graycheck verifies a file written by graygen: word count, digit
// range, single-step transitions between neighbours and distinct words.
// Parameters come from flags or from the manifest, JSON report or run
// history graygen left behind, in which case recorded digests are checked
// too.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"example.com/graycode/internal/codefile"
	"example.com/graycode/internal/common"
	"example.com/graycode/internal/gray"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("graycheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "code file to verify (default "+codefile.DefaultFileName+" or the recorded output)")
	radix := fs.Int("radix", 0, "radix the file was generated with (2..10)")
	bits := fs.Int("bits", 0, "expected digit count (0 accepts the file's width)")
	manifestPath := fs.String("manifest", "", "graygen manifest: supplies parameters and verifies listed digests")
	reportPath := fs.String("report", "", "graygen JSON run report: supplies parameters and digest")
	historyPath := fs.String("history", "", "graygen run history: uses the latest run for the file")
	findingsOut := fs.String("findings", "", "write findings as JSON lines")
	maxShown := fs.Int("max", 20, "maximum findings printed")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	common.SetLogOutput(stderr)

	exp := expectation{output: *in, numBits: *bits, radix: *radix}
	var findings []gray.Finding
	if *manifestPath != "" {
		m, mf, err := fromManifest(*manifestPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		exp = exp.merge(m)
		findings = append(findings, mf...)
	}
	if *reportPath != "" {
		r, err := fromReport(*reportPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		exp = exp.merge(r)
	}
	if *historyPath != "" {
		h, err := fromHistory(*historyPath, exp.output)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		exp = exp.merge(h)
	}
	if exp.output == "" {
		exp.output = codefile.DefaultFileName
	}

	if exp.radix < 1 || exp.radix > 10 {
		fmt.Fprintln(stderr, "required: --radix between 1 and 10, given or recorded")
		return exitUsage
	}
	table, err := codefile.ReadFile(exp.output)
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", exp.output, err)
		return exitUsage
	}

	if exp.numBits > 0 && table.Width() != exp.numBits {
		findings = append(findings, gray.Finding{
			Row:     -1,
			Kind:    gray.KindRowCount,
			Message: fmt.Sprintf("words have %d digits, want %d", table.Width(), exp.numBits),
		})
	}
	if exp.rows > 0 && int64(table.Rows()) != exp.rows {
		findings = append(findings, gray.Finding{
			Row:     -1,
			Kind:    gray.KindRowCount,
			Message: fmt.Sprintf("file has %d words, %s records %d", table.Rows(), exp.source, exp.rows),
		})
	}
	if *manifestPath == "" {
		findings = append(findings, exp.verifyFile(exp.output)...)
	}
	findings = append(findings, gray.Check(table, exp.radix)...)
	common.Logf("checked %s words of %d digits in radix %d", common.FormatCount(int64(table.Rows())), table.Width(), exp.radix)

	if *findingsOut != "" {
		if err := writeFindings(*findingsOut, findings); err != nil {
			fmt.Fprintf(stderr, "write findings: %v\n", err)
			return exitUsage
		}
	}
	for i, f := range findings {
		if i == *maxShown {
			fmt.Fprintf(stdout, "... %d more\n", len(findings)-i)
			break
		}
		fmt.Fprintln(stdout, f.String())
	}
	if len(findings) > 0 {
		fmt.Fprintf(stdout, "FAIL: %d findings\n", len(findings))
		return exitFail
	}
	fmt.Fprintln(stdout, "PASS")
	return exitPass
}

func writeFindings(path string, findings []gray.Finding) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := common.NewNDJSONWriter(f)
	for _, finding := range findings {
		if err := w.WriteObject(finding); err != nil {
			return err
		}
	}
	return nil
}
