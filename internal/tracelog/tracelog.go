// Package tracelog writes a per-period trace of a run as zstd-compressed
// JSON lines, one file per run.
package tracelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/market-sim/internal/engine"
)

// FirmState is a firm's standing at the end of a period.
type FirmState struct {
	Name       string  `json:"name"`
	Capital    float64 `json:"capital"`
	Inventory  float64 `json:"inventory"`
	Capacity   float64 `json:"capacity"`
	Efficiency float64 `json:"efficiency"`
}

// PeriodRecord is one line of the trace.
type PeriodRecord struct {
	RunID         string              `json:"run_id"`
	Result        engine.PeriodResult `json:"result"`
	Phase         engine.Phase        `json:"phase"`
	Concentration float64             `json:"concentration"`
	Firms         []FirmState         `json:"firms"`
}

// NewRecord captures res together with the market state it left behind.
func NewRecord(runID string, res engine.PeriodResult, m *engine.Market) PeriodRecord {
	rec := PeriodRecord{
		RunID:         runID,
		Result:        res,
		Phase:         m.MarketPhase(),
		Concentration: m.Concentration(),
		Firms:         make([]FirmState, len(m.Firms)),
	}
	for i, f := range m.Firms {
		rec.Firms[i] = FirmState{
			Name:       f.Name,
			Capital:    f.Capital,
			Inventory:  f.Inventory.Stock(),
			Capacity:   f.Production.Capacity,
			Efficiency: f.Production.Efficiency,
		}
	}
	return rec
}

// Path is where the trace for runID lives under dir.
func Path(dir, runID string) string {
	return filepath.Join(dir, fmt.Sprintf("trace-%s.jsonl.zst", runID))
}

// Writer appends period records to a compressed trace file. It is safe for
// concurrent use. The file is only complete once Close returns.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create starts a trace for runID under dir.
func Create(dir, runID string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(Path(dir, runID), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{
		f:   f,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Write appends one record.
func (w *Writer) Write(rec PeriodRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes the trace and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.w, w.enc, w.f = nil, nil, nil
	return err
}

// ReadAll decodes every record of a trace file.
func ReadAll(path string) ([]PeriodRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []PeriodRecord
	for sc.Scan() {
		var rec PeriodRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", filepath.Base(path), len(out)+1, err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}
