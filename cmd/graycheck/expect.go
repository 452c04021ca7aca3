package main

import (
	"fmt"

	"example.com/graycode/internal/common"
	"example.com/graycode/internal/gray"
	"example.com/graycode/internal/manifest"
	"example.com/graycode/internal/report"
)

const kindDigest gray.FindingKind = "digest"

// expectation is what a run record says the code file should contain. Zero
// fields are unknown.
type expectation struct {
	source  string
	output  string
	numBits int
	radix   int
	rows    int64
	sha256  string
}

// merge fills unknown fields of e from o.
func (e expectation) merge(o expectation) expectation {
	if e.source == "" {
		e.source = o.source
	}
	if e.output == "" {
		e.output = o.output
	}
	if e.numBits == 0 {
		e.numBits = o.numBits
	}
	if e.radix == 0 {
		e.radix = o.radix
	}
	if e.rows == 0 {
		e.rows = o.rows
	}
	if e.sha256 == "" {
		e.sha256 = o.sha256
	}
	return e
}

// fromManifest reads the manifest at path and checks every listed artifact
// against its recorded size and digest.
func fromManifest(path string) (expectation, []gray.Finding, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return expectation{}, nil, fmt.Errorf("load manifest: %w", err)
	}
	exp := expectation{source: path, numBits: m.Run.NumBits, radix: m.Run.Radix, rows: m.Run.Rows}
	var findings []gray.Finding
	for _, item := range m.Items {
		if item.Type == "gray" && exp.output == "" {
			exp.output = item.Path
			exp.sha256 = item.Sha256
		}
		sum, size, err := common.Sha256OfFile(item.Path)
		switch {
		case err != nil:
			findings = append(findings, digestFinding("%s: %v", item.Path, err))
		case sum != item.Sha256 || size != item.Size:
			findings = append(findings, digestFinding("%s: manifest lists %d bytes %s, file has %d bytes %s", item.Path, item.Size, item.Sha256, size, sum))
		}
	}
	return exp, findings, nil
}

func fromReport(path string) (expectation, error) {
	rep, err := report.LoadJSON(path)
	if err != nil {
		return expectation{}, fmt.Errorf("load report: %w", err)
	}
	return expectation{
		source:  path,
		output:  rep.Output,
		numBits: rep.NumBits,
		radix:   rep.Radix,
		rows:    rep.Rows,
		sha256:  rep.Sha256,
	}, nil
}

// fromHistory uses the latest run recorded for output, or the latest run at
// all when output is empty.
func fromHistory(path, output string) (expectation, error) {
	entry, ok, err := common.NewRunLog(path).Latest(output)
	if err != nil {
		return expectation{}, fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return expectation{}, fmt.Errorf("history %s has no run for %q", path, output)
	}
	return expectation{
		source:  path,
		output:  entry.Output,
		numBits: entry.NumBits,
		radix:   entry.Radix,
		rows:    entry.Rows,
		sha256:  entry.Sha256,
	}, nil
}

// verifyFile compares the code file's digest with the recorded one.
func (e expectation) verifyFile(path string) []gray.Finding {
	if e.sha256 == "" {
		return nil
	}
	sum, _, err := common.Sha256OfFile(path)
	if err != nil {
		return []gray.Finding{digestFinding("%s: %v", path, err)}
	}
	if sum != e.sha256 {
		return []gray.Finding{digestFinding("%s: %s records %s, file has %s", path, e.source, e.sha256, sum)}
	}
	return nil
}

func digestFinding(format string, args ...any) gray.Finding {
	return gray.Finding{Row: -1, Kind: kindDigest, Message: fmt.Sprintf(format, args...)}
}
