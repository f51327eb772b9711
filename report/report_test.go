package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/zap"

	"main/control"
	"main/metrics"
)

func populatedPanel() *metrics.Collector {
	col := metrics.NewCollector()
	col.MessagesReceived.Add(1000)
	col.MessagesProcessed.Add(990)
	col.MessagesDropped.Add(10)
	col.SequenceGaps.Add(2)
	col.QueueFullEvents.Add(10)
	for i := 0; i < 100; i++ {
		col.EndToEndLatency.Record(1500)
		col.ParseLatency.Record(300)
		col.QueueLatency.Record(2500)
	}
	return col
}

func TestCaptureReadsPanel(t *testing.T) {
	s := Capture(populatedPanel())

	assert.Equal(t, uint64(1000), s.Received)
	assert.Equal(t, uint64(990), s.Processed)
	assert.Equal(t, uint64(10), s.Dropped)
	assert.Equal(t, uint64(2), s.SequenceGaps)
	assert.NotZero(t, s.TakenAtNs)

	assert.Equal(t, uint64(100), s.EndToEnd.Count)
	assert.Equal(t, uint64(1500), s.EndToEnd.Min)
	assert.Equal(t, uint64(1500), s.EndToEnd.Max)
	assert.Equal(t, uint64(2000), s.EndToEnd.P50, "1500ns sits in the 1-2µs bucket")
	assert.Equal(t, uint64(2500), s.Queue.Mean)
}

func TestCaptureEmptyPanelReportsZeros(t *testing.T) {
	s := Capture(metrics.NewCollector())
	assert.Zero(t, s.EndToEnd.Count)
	assert.Zero(t, s.EndToEnd.Min, "the min identity must not leak into snapshots")
	assert.Zero(t, s.EndToEnd.P99)
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	s := Capture(populatedPanel())
	js, err := s.JSON()
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, sonnet.Unmarshal(js, &back))
	assert.Equal(t, s, back)
}

func TestStorePersistsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	snap := Capture(populatedPanel())
	require.NoError(t, store.SaveRun(snap))
	require.NoError(t, store.SaveRun(snap))

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM runs")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)

	var received uint64
	var js string
	row = store.db.QueryRow("SELECT received, snapshot_json FROM runs LIMIT 1")
	require.NoError(t, row.Scan(&received, &js))
	assert.Equal(t, snap.Received, received)

	var back Snapshot
	require.NoError(t, sonnet.Unmarshal([]byte(js), &back))
	assert.Equal(t, snap.EndToEnd, back.EndToEnd)
}

func TestReporterStopsOnShutdown(t *testing.T) {
	rep := New(zap.NewNop(), populatedPanel(), 10*time.Millisecond)
	st := control.NewState(0)

	done := make(chan struct{})
	go func() {
		rep.Run(st)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond) // let a few ticks emit
	st.Shutdown()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reporter did not observe shutdown")
	}
}

func TestEmitDoesNotPanic(t *testing.T) {
	New(zap.NewNop(), metrics.NewCollector(), 0).Emit()
}
