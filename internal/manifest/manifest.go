package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"example.com/graycode/internal/common"
)

type Item struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256"`
	Type   string `json:"type"`
}

// Run identifies the parameters that produced the artifacts.
type Run struct {
	NumBits int   `json:"numBits"`
	Radix   int   `json:"radix"`
	Rows    int64 `json:"rows"`
}

type Manifest struct {
	CreatedAt time.Time `json:"createdAt"`
	ShaAlgo   string    `json:"shaAlgo"`
	Run       Run       `json:"run"`
	Items     []Item    `json:"items"`
}

// Build hashes each path in order. The code file passed as codePath is typed
// "gray"; others are typed by extension.
func Build(run Run, codePath string, others ...string) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC(), ShaAlgo: "sha256", Run: run}
	paths := append([]string{codePath}, others...)
	for i, p := range paths {
		hex, sz, err := common.Sha256OfFile(p)
		if err != nil {
			return m, err
		}
		typ := "gray"
		if i > 0 {
			typ = typeOf(p)
		}
		m.Items = append(m.Items, Item{Path: p, Size: sz, Sha256: hex, Type: typ})
	}
	return m, nil
}

func typeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".jsonl":
		return "jsonl"
	case ".pdf":
		return "pdf"
	case ".txt":
		return "text"
	default:
		return "other"
	}
}

func Save(m Manifest, out string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func Load(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}
