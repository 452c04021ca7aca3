package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/graycode/internal/codefile"
	"example.com/graycode/internal/common"
	"example.com/graycode/internal/gray"
	"example.com/graycode/internal/manifest"
	"example.com/graycode/internal/report"
)

type runFiles struct {
	dir   string
	code  string
	table *gray.Table
	sha   string
}

func writeRun(t *testing.T, bits, radix int) runFiles {
	t.Helper()
	dir := t.TempDir()
	tbl, err := gray.Generate(bits, radix)
	require.NoError(t, err)
	code := filepath.Join(dir, "gray.txt")
	_, err = codefile.WriteFile(code, tbl)
	require.NoError(t, err)
	sha, _, err := common.Sha256OfFile(code)
	require.NoError(t, err)
	return runFiles{dir: dir, code: code, table: tbl, sha: sha}
}

func TestCheckFromManifest(t *testing.T) {
	rf := writeRun(t, 3, 3)
	m, err := manifest.Build(manifest.Run{NumBits: 3, Radix: 3, Rows: 27}, rf.code)
	require.NoError(t, err)
	mPath := filepath.Join(rf.dir, "manifest.json")
	require.NoError(t, manifest.Save(m, mPath))

	code, out := check(t, "-manifest", mPath)
	assert.Equal(t, exitPass, code, out)
	assert.Equal(t, "PASS\n", out)

	// Same size, different content: "000" becomes "100".
	data, err := os.ReadFile(rf.code)
	require.NoError(t, err)
	data[0] = '1'
	require.NoError(t, os.WriteFile(rf.code, data, 0o644))

	code, out = check(t, "-manifest", mPath)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "digest: "+rf.code+": manifest lists")
}

func TestCheckFromManifestMissingArtifact(t *testing.T) {
	rf := writeRun(t, 2, 2)
	extra := filepath.Join(rf.dir, "run.json")
	require.NoError(t, os.WriteFile(extra, []byte("{}"), 0o644))
	m, err := manifest.Build(manifest.Run{NumBits: 2, Radix: 2, Rows: 4}, rf.code, extra)
	require.NoError(t, err)
	mPath := filepath.Join(rf.dir, "manifest.json")
	require.NoError(t, manifest.Save(m, mPath))
	require.NoError(t, os.Remove(extra))

	code, out := check(t, "-manifest", mPath)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "digest: "+extra)
	assert.Contains(t, out, "FAIL: 1 findings")
}

func TestCheckFromReport(t *testing.T) {
	rf := writeRun(t, 2, 4)
	rep := report.NewRunReport(rf.table, 4, common.MetricsSnapshot{}, rf.code, rf.sha, 4)
	rPath := filepath.Join(rf.dir, "run.json")
	require.NoError(t, report.SaveJSON(rep, rPath))

	code, out := check(t, "-report", rPath)
	assert.Equal(t, exitPass, code, out)

	rep.Rows = 15
	require.NoError(t, report.SaveJSON(rep, rPath))
	code, out = check(t, "-report", rPath)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "file has 16 words, "+rPath+" records 15")
}

func TestCheckFromHistory(t *testing.T) {
	rf := writeRun(t, 2, 3)
	hPath := filepath.Join(rf.dir, "runs.jsonl")
	rl := common.NewRunLog(hPath)
	require.NoError(t, rl.Append(common.RunEntry{NumBits: 2, Radix: 3, Rows: 9, Output: rf.code, Sha256: "stale"}))
	require.NoError(t, rl.Append(common.RunEntry{NumBits: 4, Radix: 2, Rows: 16, Output: filepath.Join(rf.dir, "other.txt")}))

	code, out := check(t, "-history", hPath, "-in", rf.code)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "records stale")

	require.NoError(t, rl.Append(common.RunEntry{NumBits: 2, Radix: 3, Rows: 9, Output: rf.code, Sha256: rf.sha}))
	code, out = check(t, "-history", hPath, "-in", rf.code)
	assert.Equal(t, exitPass, code, out)

	code, _ = check(t, "-history", hPath, "-in", filepath.Join(rf.dir, "never.txt"))
	assert.Equal(t, exitUsage, code)
}

func TestCheckFlagsOverrideRecordedParameters(t *testing.T) {
	rf := writeRun(t, 2, 2)
	rep := report.NewRunReport(rf.table, 3, common.MetricsSnapshot{}, rf.code, "", 0)
	rPath := filepath.Join(rf.dir, "run.json")
	require.NoError(t, report.SaveJSON(rep, rPath))

	code, out := check(t, "-report", rPath, "-radix", "2")
	assert.Equal(t, exitPass, code, out)
}
