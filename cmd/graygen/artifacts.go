package main

import (
	"fmt"
	"time"

	"example.com/graycode/internal/common"
	"example.com/graycode/internal/config"
	"example.com/graycode/internal/gray"
	"example.com/graycode/internal/input"
	"example.com/graycode/internal/manifest"
	"example.com/graycode/internal/report"
)

// writeArtifacts produces the optional report, history and manifest files
// for a finished run. The manifest is written last so it can cover the
// reports.
func writeArtifacts(cfg config.Config, params input.Params, table *gray.Table, snap common.MetricsSnapshot) error {
	if cfg.Report.JSON == "" && cfg.Report.PDF == "" && cfg.History == "" && cfg.Manifest == "" {
		return nil
	}
	sha, _, err := common.Sha256OfFile(cfg.Output)
	if err != nil {
		return fmt.Errorf("hash output: %w", err)
	}

	var extras []string
	if cfg.Report.JSON != "" || cfg.Report.PDF != "" {
		rep := report.NewRunReport(table, params.Radix, snap, cfg.Output, sha, cfg.Report.PreviewRows)
		if cfg.Report.JSON != "" {
			if err := report.SaveJSON(rep, cfg.Report.JSON); err != nil {
				return fmt.Errorf("save report json: %w", err)
			}
			extras = append(extras, cfg.Report.JSON)
			common.Logf("report written to %s", cfg.Report.JSON)
		}
		if cfg.Report.PDF != "" {
			if err := report.SavePDF(rep, cfg.Report.PDF, cfg.Report.QRSize); err != nil {
				return fmt.Errorf("save report pdf: %w", err)
			}
			extras = append(extras, cfg.Report.PDF)
			common.Logf("report written to %s", cfg.Report.PDF)
		}
	}

	if cfg.History != "" {
		entry := common.RunEntry{
			NumBits:   params.NumBits,
			Radix:     params.Radix,
			Rows:      snap.Rows,
			Output:    cfg.Output,
			Sha256:    sha,
			ComputeMs: float64(snap.Compute) / float64(time.Millisecond),
			WriteMs:   float64(snap.Write) / float64(time.Millisecond),
		}
		if err := common.NewRunLog(cfg.History).Append(entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
	}

	if cfg.Manifest != "" {
		run := manifest.Run{NumBits: params.NumBits, Radix: params.Radix, Rows: snap.Rows}
		m, err := manifest.Build(run, cfg.Output, extras...)
		if err != nil {
			return fmt.Errorf("build manifest: %w", err)
		}
		if err := manifest.Save(m, cfg.Manifest); err != nil {
			return fmt.Errorf("save manifest: %w", err)
		}
		common.Logf("manifest written to %s", cfg.Manifest)
	}
	return nil
}
