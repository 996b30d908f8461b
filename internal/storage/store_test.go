package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{T: 0, X: 10, Y: 0, R: 10},
			{T: 0.01, X: 9.99, Y: 0.1, R: math.Hypot(9.99, 0.1)},
		},
		Termination:     sim.Escaped,
		Steps:           2,
		ClosestApproach: 4.45,
		Final:           sim.Sample{T: 0.02, X: 9.98, Y: 0.2, R: math.Hypot(9.98, 0.2)},
		Metrics: map[string]float64{
			"path_length": 0.1,
			"deflection":  math.NaN(),
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.GetPreset("geodesic-escaping")
	res := testResult()

	runID, err := st.Save(cfg, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "geodesic_rk4_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Regime != config.RegimeGeodesic || meta.Termination != sim.Escaped || meta.Steps != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.ClosestApproach == nil || *meta.ClosestApproach != 4.45 {
		t.Errorf("closest approach lost: %v", meta.ClosestApproach)
	}
	if meta.Metrics["path_length"] != 0.1 {
		t.Errorf("expected path_length 0.1, got %v", meta.Metrics)
	}
	if _, ok := meta.Metrics["deflection"]; ok {
		t.Error("non-finite metrics should be dropped")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 || samples[1] != res.Samples[1] {
		t.Errorf("samples did not round trip: %+v", samples)
	}
}

func TestStoreSaveInfiniteApproach(t *testing.T) {
	st := New(t.TempDir())
	res := testResult()
	res.ClosestApproach = math.Inf(1)
	res.Final = sim.Sample{X: math.Inf(1)}

	runID, err := st.Save(config.DefaultConfig(), res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ClosestApproach != nil {
		t.Errorf("expected no closest approach, got %v", *meta.ClosestApproach)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	for _, name := range []string{"newton", "geodesic-escaping"} {
		if _, err := st.Save(config.GetPreset(name), testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	os.MkdirAll(filepath.Join(dir, "junk"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.After(runs[1].Timestamp) {
		t.Error("runs not ordered by time")
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list for missing dir, got %v, %v", runs, err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, config.GetPreset("geodesic-escaping"), testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out struct {
		Regime      string       `json:"regime"`
		Termination string       `json:"termination"`
		Samples     []sim.Sample `json:"samples"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.Regime != config.RegimeGeodesic || out.Termination != "escaped" || len(out.Samples) != 2 {
		t.Errorf("unexpected export %+v", out)
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ReadCSV(strings.NewReader("t,x,y,r\n0,1,oops,1\n")); err == nil {
		t.Error("expected parse error")
	}
	samples, err := ReadCSV(strings.NewReader("t,x,y,r\n"))
	if err != nil || len(samples) != 0 {
		t.Errorf("header-only file should give no samples, got %v, %v", samples, err)
	}
}

func TestExportRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	id, err := st.Save(config.GetPreset("geodesic-escaping"), testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportRun(&buf, id); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != id || len(got.Samples) != 2 {
		t.Errorf("got id %q with %d samples", got.ID, len(got.Samples))
	}

	if err := st.ExportRun(&buf, "missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestSaveRemovesRunOnFailedWrite(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk full")
	orig := writeSamples
	writeSamples = func(io.Writer, *sim.Result) error { return boom }
	defer func() { writeSamples = orig }()

	id, err := st.Save(config.GetPreset("geodesic-escaping"), testResult())
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if id != "" {
		t.Errorf("failed save returned id %q", id)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("run directory left behind: %v", entries)
	}
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List after failed save = %v, %v", runs, err)
	}
}

func TestWriteFileReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "ok" {
		t.Errorf("file contents %q", data)
	}

	if err := writeFile(filepath.Join(t.TempDir(), "missing", "out.txt"), func(io.Writer) error { return nil }); err == nil {
		t.Error("expected create error")
	}
}
