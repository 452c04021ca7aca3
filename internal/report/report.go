package report

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"example.com/graycode/internal/common"
	"example.com/graycode/internal/gray"
)

// RunReport summarizes one generation run.
type RunReport struct {
	NumBits        int       `json:"numBits"`
	Radix          int       `json:"radix"`
	Rows           int64     `json:"rows"`
	Output         string    `json:"output"`
	OutputBytes    int64     `json:"outputBytes"`
	Sha256         string    `json:"sha256,omitempty"`
	ComputeSeconds float64   `json:"computeSeconds"`
	WriteSeconds   float64   `json:"writeSeconds"`
	CreatedAt      time.Time `json:"createdAt"`
	Preview        []string  `json:"preview,omitempty"`
}

// NewRunReport assembles a report from a finished run. Up to previewRows
// leading words are rendered the way they appear in the output file.
func NewRunReport(t *gray.Table, radix int, snap common.MetricsSnapshot, output, sha string, previewRows int) RunReport {
	rep := RunReport{
		NumBits:        t.Width(),
		Radix:          radix,
		Rows:           int64(t.Rows()),
		Output:         output,
		OutputBytes:    snap.Bytes,
		Sha256:         sha,
		ComputeSeconds: snap.Compute.Seconds(),
		WriteSeconds:   snap.Write.Seconds(),
		CreatedAt:      time.Now().UTC(),
	}
	n := previewRows
	if n > t.Rows() {
		n = t.Rows()
	}
	for i := 0; i < n; i++ {
		rep.Preview = append(rep.Preview, wordString(t.Row(i)))
	}
	return rep
}

func wordString(row []int) string {
	b := make([]byte, 0, 2*len(row))
	for _, d := range row {
		b = strconv.AppendInt(b, int64(d), 10)
	}
	return string(b)
}

func SaveJSON(rep RunReport, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadJSON(path string) (RunReport, error) {
	var rep RunReport
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	err = json.Unmarshal(b, &rep)
	return rep, err
}
