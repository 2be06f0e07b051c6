package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/SsinghBh/PINN-lab/internal/pinn"
)

type ExportData struct {
	Meta   RunMetadata       `json:"meta"`
	Times  []float64         `json:"times"`
	X      []float64         `json:"x"`
	V      []float64         `json:"v"`
	XExact []float64         `json:"x_exact,omitempty"`
	VExact []float64         `json:"v_exact,omitempty"`
	Loss   []pinn.LossSample `json:"loss,omitempty"`
}

// ExportJSON bundles a run's metadata, trajectory and loss curve into
// a single JSON document for downstream tooling.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *Trajectory, hist *pinn.History) error {
	data := ExportData{
		Meta:  *meta,
		Times: tr.Times,
		X:     tr.X,
		V:     tr.V,
	}
	if tr.HasExact() {
		data.XExact = tr.XExact
		data.VExact = tr.VExact
	}
	if hist != nil {
		data.Loss = hist.Samples
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONFile(path string, meta *RunMetadata, tr *Trajectory, hist *pinn.History) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, tr, hist)
}
