// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: main.go — Demo feed pipeline driver
//
// Purpose:
//   - Wires the full ingestion path: synthetic FIX producers → per-producer
//     SPSC rings → pinned consumers → MPMC fan-in → book drainer, with the
//     metrics panel observing every stage.
//
// Topology:
//   producer[i] ──ring[i]──▶ consumer[i] ──mpmc──▶ drainer
//
// Notes:
//   - Producers run on configured threads (pin → name → SCHED_FIFO, all
//     best-effort); consumers use the pinned hot/cold spin loop.
//   - One positional argument: run duration in seconds (default 10).
//   - Exit code 0 on normal shutdown.
// ─────────────────────────────────────────────────────────────────────────────

package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"main/clock"
	"main/config"
	"main/constants"
	"main/control"
	"main/cpu"
	"main/debug"
	"main/metrics"
	"main/parser"
	"main/pool"
	"main/queue"
	"main/report"
	"main/ring"
	"main/types"
	"main/utils"
)

// configPath is the optional runtime-override file.
const configPath = "feedrt.json"

var symbols = [4]string{"AAPL", "MSFT", "NVDA", "AMZN"}

func main() {
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if len(os.Args) > 1 {
		secs, err := strconv.Atoi(os.Args[1])
		if err != nil || secs <= 0 {
			logger.Fatal("usage: feedrt [duration-seconds]", zap.String("arg", os.Args[1]))
		}
		cfg.RunSeconds = secs
	}

	clock.Calibrate()
	logger.Info("cycle clock calibrated",
		zap.Uint64("cycles_per_second", clock.CyclesPerSecond()))

	isolated := cpu.IsolatedCPUs()
	logger.Info("topology",
		zap.Int("cpus", cpu.NumCPUs()),
		zap.Ints("isolated", isolated),
		zap.Bool("realtime", cpu.HasRealtime()))
	if len(isolated) == 0 {
		debug.DropMessage("[topology]", "no isolated cpus; pinning onto shared cores")
	}

	// ── shared state ──────────────────────────────────────────────────
	state := control.NewState(0)
	col := metrics.NewCollector()

	slab := pool.New(constants.EventSize, cfg.PoolSlots, cfg.UseHugePages)
	defer func() { _ = slab.Close() }()
	logger.Info("slab pool ready",
		zap.Int("slots", slab.Capacity()),
		zap.Bool("huge_pages", slab.UsingHugePages()))

	fanin := queue.New(cfg.QueueNodes)

	rings := make([]*ring.Ring, cfg.Producers)
	for i := range rings {
		rings[i] = ring.New(cfg.RingCapacity)
		rings[i].SetWatermarks(
			int(float64(cfg.RingCapacity)*cfg.LowWatermark),
			int(float64(cfg.RingCapacity)*cfg.HighWatermark))
	}

	// ── workers ───────────────────────────────────────────────────────
	producers := make([]*cpu.Thread, cfg.Producers)
	consumerDone := make([]chan struct{}, cfg.Producers)
	for i := 0; i < cfg.Producers; i++ {
		i := i
		producers[i] = cpu.Start(cpu.Config{
			CPU:      pickCore(cfg.ProducerCPUs, isolated, i),
			Name:     "feed-prod-" + strconv.Itoa(i),
			Priority: cfg.RealtimePrio,
		}, func() { produce(uint32(i+1), state, col, slab, rings[i]) })

		consumerDone[i] = make(chan struct{})
		ring.PinnedConsumer(
			pickCore(cfg.ConsumerCPUs, isolated, cfg.Producers+i),
			rings[i], state, consumeFn(col, fanin), consumerDone[i])
	}

	drainer := cpu.Start(cpu.Config{CPU: -1, Name: "feed-book"}, func() {
		drain(state, col, fanin)
	})

	rep := report.New(logger, col, cfg.StatsInterval())
	repDone := make(chan struct{})
	go func() { rep.Run(state); close(repDone) }()

	// ── run window ────────────────────────────────────────────────────
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	deadline := time.After(time.Duration(cfg.RunSeconds) * time.Second)
	cooldown := time.NewTicker(100 * time.Millisecond)
	warnedHigh := false

	logger.Info("running", zap.Int("seconds", cfg.RunSeconds),
		zap.Int("producers", cfg.Producers))
wait:
	for {
		select {
		case <-deadline:
			break wait
		case <-sig:
			debug.DropMessage("[signal]", "interrupt — shutting down")
			break wait
		case <-cooldown.C:
			state.PollCooldown()
			if !warnedHigh {
				for _, r := range rings {
					if r.HighWatermarkExceeded() {
						logger.Warn("ring above high watermark",
							zap.Int("size", r.Size()))
						warnedHigh = true
						break
					}
				}
			}
		}
	}
	cooldown.Stop()

	// ── teardown: stop, drain, join ───────────────────────────────────
	state.Shutdown()
	for _, p := range producers {
		p.Join()
	}
	for _, done := range consumerDone {
		<-done
	}
	drainer.Join()
	<-repDone

	// final panel + persistence
	rep.Emit()
	final := report.Capture(col)
	if cfg.ReportDB != "" {
		if err := saveRun(cfg.ReportDB, final); err != nil {
			logger.Warn("run persistence failed", zap.Error(err))
		} else {
			logger.Info("run persisted", zap.String("db", cfg.ReportDB))
		}
	}
	logger.Info("shutdown complete",
		zap.Uint64("received", final.Received),
		zap.Uint64("processed", final.Processed),
		zap.Uint64("dropped", final.Dropped),
		zap.Uint64("gaps", final.SequenceGaps))
}

// pickCore maps worker slot i to a core: explicit config first, then the
// isolated set, then unpinned.
func pickCore(prefer, isolated []int, i int) int {
	if i < len(prefer) {
		return prefer[i]
	}
	if len(isolated) > 0 {
		return isolated[i%len(isolated)]
	}
	return -1
}

// produce synthesizes FIX messages, decodes them at ingress and publishes
// the records to this producer's ring. The scratch record lives in one
// slab slot held for the whole run.
func produce(venue uint32, st *control.State, col *metrics.Collector,
	slab *pool.Pool, r *ring.Ring) {

	slot := slab.Allocate()
	if slot == nil {
		debug.DropMessage("[producer]", "slab exhausted at startup")
		return
	}
	defer slab.Deallocate(slot)
	ev := (*types.MarketEvent)(slot)

	dec := parser.NewFIX(venue)
	msg := make([]byte, 0, 160)
	var seq uint64

	for !st.Stopped() {
		seq++
		msg = appendFIX(msg[:0], symbols[seq&3], seq,
			150*types.PriceScale+int64(seq%100)*types.PriceScale/100)

		w := clock.StartWatch()
		if dec.Parse(msg, ev) == 0 {
			col.ParseErrors.Inc()
			continue
		}
		col.ParseLatency.Record(w.ElapsedNanos())
		ev.ExchangeTimestamp = clock.NowNanos()

		if !r.TryPush(ev) {
			col.QueueFullEvents.Inc()
			col.MessagesDropped.Inc()
		} else {
			col.MessagesReceived.Inc()
			st.SignalActivity()
		}

		// pace to roughly 1M msgs/sec per producer
		if seq%1024 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// appendFIX renders one order message into buf without allocation.
func appendFIX(buf []byte, symbol string, seq uint64, price int64) []byte {
	buf = append(buf, "8=FIX.4.2\x019=0\x0135=D\x0134="...)
	buf = utils.AppendUint(buf, seq)
	buf = append(buf, "\x0155="...)
	buf = append(buf, symbol...)
	buf = append(buf, "\x0154=1\x0144="...)
	buf = utils.AppendFixed(buf, price)
	buf = append(buf, "\x0138=100\x0110=000\x01"...)
	return buf
}

// consumeFn builds the per-ring consumer callback: stamp end-to-end
// latency, watch for sequence gaps, and hand the record to the MPMC
// fan-in with a fresh cycle stamp for the queue-latency leg.
func consumeFn(col *metrics.Collector, fanin *queue.Queue) func(*types.MarketEvent) {
	var lastSeq uint64
	return func(ev *types.MarketEvent) {
		col.EndToEndLatency.Record(
			clock.CyclesToNanos(clock.NowCycles() - ev.ReceiveTimestamp))
		if lastSeq != 0 && ev.SequenceNumber != lastSeq+1 {
			col.SequenceGaps.Inc()
		}
		lastSeq = ev.SequenceNumber
		col.MessagesProcessed.Inc()

		ev.ReceiveTimestamp = clock.NowCycles()
		if !fanin.TryEnqueue(ev) {
			col.QueueFullEvents.Inc()
			col.MessagesDropped.Inc()
		}
	}
}

// saveRun appends the final snapshot to the run database.
func saveRun(path string, snap report.Snapshot) error {
	store, err := report.OpenStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.SaveRun(snap)
}

// drain empties the MPMC fan-in in bulk, recording per-record queue
// residency. Exits once shutdown is requested and the queue reads empty.
func drain(st *control.State, col *metrics.Collector, fanin *queue.Queue) {
	var batch [256]types.MarketEvent
	for {
		n := fanin.TryDequeueBulk(batch[:])
		if n == 0 {
			if st.Stopped() {
				return
			}
			cpu.SpinWait(64)
			continue
		}
		now := clock.NowCycles()
		for i := 0; i < n; i++ {
			col.QueueLatency.Record(
				clock.CyclesToNanos(now - batch[i].ReceiveTimestamp))
		}
	}
}
