package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/SsinghBh/PINN-lab/internal/config"
	"github.com/SsinghBh/PINN-lab/internal/pinn"
)

// Store persists training runs under a base directory, one
// subdirectory per run holding metadata.json, loss.csv and
// trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	FinalLoss pinn.LossSample    `json:"final_loss"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Trajectory is the predicted solution on an evaluation grid. The
// exact columns are present only when the problem has a closed form.
type Trajectory struct {
	Times  []float64
	X      []float64
	V      []float64
	XExact []float64
	VExact []float64
}

func (tr *Trajectory) HasExact() bool {
	return len(tr.XExact) == len(tr.Times) && len(tr.Times) > 0
}

func (s *Store) Save(preset string, cfg *config.Config, hist *pinn.History, tr *Trajectory, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run dir")
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Config:    *cfg,
		FinalLoss: hist.Final,
		Metrics:   metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeLossCSV(filepath.Join(runDir, "loss.csv"), hist); err != nil {
		return "", err
	}
	if tr != nil {
		if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), tr); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLossCSV(path string, hist *pinn.History) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create loss csv")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "total", "residual", "boundary"}); err != nil {
		return err
	}
	for _, s := range hist.Samples {
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Total),
			formatFloat(s.Residual),
			formatFloat(s.Boundary),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeTrajectoryCSV(path string, tr *Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create trajectory csv")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"t", "x_pred", "v_pred"}
	if tr.HasExact() {
		header = append(header, "x_exact", "v_exact")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range tr.Times {
		row := []string{
			formatFloat(tr.Times[i]),
			formatFloat(tr.X[i]),
			formatFloat(tr.V[i]),
		}
		if tr.HasExact() {
			row = append(row, formatFloat(tr.XExact[i]), formatFloat(tr.VExact[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 9, 64)
}

// SaveResiduals writes the ODE residuals on the evaluation grid as
// residuals.csv next to the run's other artifacts.
func (s *Store) SaveResiduals(runID string, times, r1, r2 []float64) error {
	file, err := os.Create(filepath.Join(s.baseDir, runID, "residuals.csv"))
	if err != nil {
		return errors.Wrap(err, "create residuals csv")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"t", "r1", "r2"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{formatFloat(times[i]), formatFloat(r1[i]), formatFloat(r2[i])}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) LoadResiduals(runID string) (times, r1, r2 []float64, err error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "residuals.csv"))
	if err != nil {
		return nil, nil, nil, err
	}

	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		times = append(times, parseFloat(rec[0]))
		r1 = append(r1, parseFloat(rec[1]))
		r2 = append(r2, parseFloat(rec[2]))
	}
	return times, r1, r2, nil
}

// List returns metadata for every run, newest first. Directories
// without a readable metadata.json are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "run %s: bad metadata", runID)
	}

	return &meta, nil
}

func (s *Store) LoadLoss(runID string) (*pinn.History, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "loss.csv"))
	if err != nil {
		return nil, err
	}

	hist := &pinn.History{}
	for _, rec := range records {
		if len(rec) < 4 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		sample := pinn.LossSample{
			Step:     step,
			Total:    parseFloat(rec[1]),
			Residual: parseFloat(rec[2]),
			Boundary: parseFloat(rec[3]),
		}
		hist.Samples = append(hist.Samples, sample)
	}
	if len(hist.Samples) > 0 {
		hist.Final = hist.Samples[len(hist.Samples)-1]
	}

	return hist, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}

	tr := &Trajectory{}
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		tr.Times = append(tr.Times, parseFloat(rec[0]))
		tr.X = append(tr.X, parseFloat(rec[1]))
		tr.V = append(tr.V, parseFloat(rec[2]))
		if len(rec) >= 5 {
			tr.XExact = append(tr.XExact, parseFloat(rec[3]))
			tr.VExact = append(tr.VExact, parseFloat(rec[4]))
		}
	}

	return tr, nil
}

// readCSV returns the data rows, header stripped.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
