package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestMetricsPhases(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMetrics()
	m.now = clock.now

	m.Start(PhaseCompute)
	clock.advance(1500 * time.Millisecond)
	m.Stop(PhaseCompute)
	m.Start(PhaseWrite)
	clock.advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, m.Elapsed(PhaseWrite))
	clock.advance(250 * time.Millisecond)
	m.Stop(PhaseWrite)
	clock.advance(time.Second)
	m.Stop(PhaseWrite)

	m.AddRows(9)
	m.AddRows(-1)
	m.AddBytes(1024)

	snap := m.Snapshot()
	assert.Equal(t, 1500*time.Millisecond, snap.Compute)
	assert.Equal(t, 500*time.Millisecond, snap.Write)
	assert.EqualValues(t, 9, snap.Rows)
	assert.EqualValues(t, 1024, snap.Bytes)
	assert.InDelta(t, 2048.0, snap.ThroughputBytesPerSecond(), 1e-9)
	assert.Equal(t, "It took 1.500 seconds to compute the gray code and 0.500 seconds to write the results", snap.TimingLine())
}

func TestMetricsUnstartedPhase(t *testing.T) {
	m := NewMetrics()
	m.Stop(PhaseCompute)
	assert.Zero(t, m.Elapsed(PhaseCompute))
	assert.Zero(t, m.Snapshot().ThroughputBytesPerSecond())
}

func TestFormatTimingLineRounds(t *testing.T) {
	line := FormatTimingLine(1234567*time.Microsecond, 0)
	assert.Equal(t, "It took 1.235 seconds to compute the gray code and 0.000 seconds to write the results", line)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "9", FormatCount(9))
	assert.Equal(t, "59,049", FormatCount(59049))
	assert.Equal(t, "1,048,576", FormatCount(1<<20))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.50 KiB", FormatBytes(1536))
	assert.Equal(t, "2.00 MiB", FormatBytes(2<<20))
}

func TestSha256OfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.txt")
	require.NoError(t, os.WriteFile(path, []byte("00\n01\n"), 0o644))
	sum, size, err := Sha256OfFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 6, size)
	assert.Len(t, sum, 64)

	_, _, err = Sha256OfFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRunLogAppendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "runs.jsonl")
	rl := NewRunLog(path)
	require.NoError(t, rl.Append(RunEntry{NumBits: 2, Radix: 3, Rows: 9, Output: "gray.txt"}))
	require.NoError(t, rl.Append(RunEntry{NumBits: 4, Radix: 2, Rows: 16, Output: "b.txt", Ts: time.Unix(10, 0).UTC()}))
	require.NoError(t, rl.Append(RunEntry{NumBits: 3, Radix: 3, Rows: 27, Output: "./gray.txt"}))

	entries, err := rl.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.False(t, entries[0].Ts.IsZero())
	assert.Equal(t, "b.txt", entries[1].Output)
	assert.Equal(t, path, rl.Path())

	latest, ok, err := rl.Latest("gray.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, latest.NumBits)

	latest, ok, err = rl.Latest("")
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 27, latest.Rows)

	_, ok, err = rl.Latest("other.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunLogRejectsInvalidEntries(t *testing.T) {
	rl := NewRunLog(filepath.Join(t.TempDir(), "runs.jsonl"))
	for _, e := range []RunEntry{
		{NumBits: 1, Radix: 2, Rows: 2},
		{NumBits: 0, Radix: 2, Rows: 1, Output: "x"},
		{NumBits: 1, Radix: 0, Rows: 1, Output: "x"},
		{NumBits: 1, Radix: 2, Rows: 0, Output: "x"},
	} {
		assert.ErrorIs(t, rl.Append(e), ErrInvalidRunEntry, "%+v", e)
	}
	_, err := rl.Entries()
	assert.True(t, os.IsNotExist(err))

	var nilLog *RunLog
	assert.Error(t, nilLog.Append(RunEntry{NumBits: 1, Radix: 2, Rows: 2, Output: "x"}))
	assert.Empty(t, nilLog.Path())
}

func TestRunLogReportsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	doc := `{"numBits":1,"radix":2,"rows":2,"output":"a.txt"}

{"numBits":0,"radix":2,"rows":2,"output":"b.txt"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := NewRunLog(path).Entries()
	assert.ErrorIs(t, err, ErrInvalidRunEntry)
	assert.Contains(t, err.Error(), ":3:")
}

func TestNDJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteObject(map[string]int{"row": 3}))
	require.NoError(t, w.WriteObject(map[string]int{"row": 4}))
	assert.Equal(t, "{\"row\":3}\n{\"row\":4}\n", buf.String())
}

func TestSetupLoggingWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	closer, err := SetupLogging(LogOptions{Directory: dir, MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() { SetLogOutput(os.Stderr) })

	Logf("generated %s rows", FormatCount(9))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "graycode.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[graycode] "))
	assert.Contains(t, string(data), "generated 9 rows")
}

func TestSetupLoggingWithoutDirectory(t *testing.T) {
	closer, err := SetupLogging(LogOptions{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
