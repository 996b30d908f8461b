package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

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
	ID              string             `json:"id"`
	Regime          string             `json:"regime"`
	Integrator      string             `json:"integrator"`
	Timestamp       time.Time          `json:"timestamp"`
	Mass            float64            `json:"mass"`
	Spin            float64            `json:"spin"`
	Step            float64            `json:"step"`
	MaxSteps        int                `json:"max_steps"`
	Termination     sim.Termination    `json:"termination"`
	Steps           int                `json:"steps"`
	ClosestApproach *float64           `json:"closest_approach,omitempty"`
	Final           sim.Sample         `json:"final"`
	Metrics         map[string]float64 `json:"metrics"`
}

func newMetadata(cfg *config.Config, res *sim.Result) RunMetadata {
	meta := RunMetadata{
		Regime:      cfg.Regime,
		Integrator:  cfg.Integrator,
		Timestamp:   time.Now(),
		Mass:        cfg.Mass,
		Spin:        cfg.Spin,
		Step:        cfg.Step,
		MaxSteps:    cfg.MaxSteps,
		Termination: res.Termination,
		Steps:       res.Steps,
		Final:       res.Final,
		Metrics:     make(map[string]float64, len(res.Metrics)),
	}
	if f := res.Final; !finite(f.T) || !finite(f.X) || !finite(f.Y) || !finite(f.R) {
		meta.Final = sim.Sample{}
	}
	if finite(res.ClosestApproach) {
		ca := res.ClosestApproach
		meta.ClosestApproach = &ca
	}
	// encoding/json rejects NaN and Inf.
	for k, v := range res.Metrics {
		if finite(v) {
			meta.Metrics[k] = v
		}
	}
	return meta
}

// writeSamples is replaced in tests to simulate a failed write.
var writeSamples = ExportCSV

// Save writes metadata.json and samples.csv into a new run directory and
// returns the run ID. A failed write removes the run directory.
func (s *Store) Save(cfg *config.Config, res *sim.Result) (string, error) {
	meta := newMetadata(cfg, res)
	meta.ID = fmt.Sprintf("%s_%s_%d", cfg.Regime, cfg.Integrator, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		err = fmt.Errorf("write metadata: %w", err)
	} else if err = writeFile(filepath.Join(runDir, samplesFile), func(w io.Writer) error {
		return writeSamples(w, res)
	}); err != nil {
		err = fmt.Errorf("write samples: %w", err)
	}

	if err != nil {
		return "", errors.Join(err, os.RemoveAll(runDir))
	}
	return meta.ID, nil
}

// writeFile creates path, fills it with write and reports the close error
// if the write itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// List returns every readable run, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

var csvHeader = []string{"t", "x", "y", "r"}

// ExportCSV writes the samples as t,x,y,r rows with full precision.
func ExportCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range res.Samples {
		row := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.X, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
			strconv.FormatFloat(s.R, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("samples: missing header")
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [4]float64
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("samples line %d: %w", i+2, err)
			}
			vals[j] = v
		}
		samples = append(samples, sim.Sample{T: vals[0], X: vals[1], Y: vals[2], R: vals[3]})
	}
	return samples, nil
}

type ExportData struct {
	RunMetadata
	Samples []sim.Sample `json:"samples"`
}

// ExportJSON writes metadata and samples as one indented JSON document.
func ExportJSON(w io.Writer, cfg *config.Config, res *sim.Result) error {
	return writeJSON(w, ExportData{
		RunMetadata: newMetadata(cfg, res),
		Samples:     res.Samples,
	})
}

// ExportRun writes a stored run in the ExportJSON layout.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return writeJSON(w, ExportData{RunMetadata: *meta, Samples: samples})
}

func writeJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
