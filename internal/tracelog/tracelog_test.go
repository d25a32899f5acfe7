package tracelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/market-sim/internal/scenario"
	"github.com/talgya/market-sim/internal/tracelog"
)

func TestTraceRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	m, _ := scenario.Default().Build()

	w, err := tracelog.Create(dir, "run-1")
	require.NoError(t, err)

	var want []tracelog.PeriodRecord
	for i := 0; i < 4; i++ {
		rec := tracelog.NewRecord("run-1", m.SimulatePeriod(), m)
		want = append(want, rec)
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	got, err := tracelog.ReadAll(tracelog.Path(dir, "run-1"))
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := range want {
		assert.Equal(t, want[i].Result.Period, got[i].Result.Period)
		assert.Equal(t, want[i].Phase, got[i].Phase)
		assert.InDelta(t, want[i].Result.ClearingPrice, got[i].Result.ClearingPrice, 1e-9)
		assert.Equal(t, want[i].Firms, got[i].Firms)
	}
	assert.Equal(t, "Acme Corp", got[3].Firms[0].Name)
}

func TestWriteAfterClose(t *testing.T) {
	w, err := tracelog.Create(t.TempDir(), "run-2")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Write(tracelog.PeriodRecord{}), os.ErrClosed)
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := tracelog.ReadAll(filepath.Join(t.TempDir(), "absent.jsonl.zst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
