// Package datafeed tails a JSONL sample file and stages its points for
// a plot model, requesting a data-refreshing redraw as samples arrive.
//
// Each line is one sample object, for example:
//
//	{"series": "loss", "x": 3, "y": 0.21}
//
// "series" defaults to "values" and "x" to a per-series counter, so a
// bare {"y": 0.21} stream works. Values use the extended JSON accepted
// by simplejsonext, so NaN and Infinity literals parse; non-finite
// samples are skipped.
//
// Parsing happens on the watcher goroutine, but parsed samples are
// only staged there; the thread that renders the model applies them
// with Drain, so the model is never mutated concurrently with a pass.
package datafeed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	poller "github.com/radovskyb/watcher"
	"github.com/wandb/simplejsonext"
	"golang.org/x/sync/errgroup"

	"github.com/luoshushi/oxyplot/internal/model"
	"github.com/luoshushi/oxyplot/internal/observability"
	"github.com/luoshushi/oxyplot/internal/series"
)

// DefaultSeriesName is used for samples that carry no "series" field.
const DefaultSeriesName = "values"

// Invalidator receives the redraw requests the feed generates. The
// surface satisfies it.
type Invalidator interface {
	RequestInvalidate(updateData bool)
}

type Params struct {
	// Path is the JSONL file to tail.
	Path string

	// Invalidator is notified after each batch of staged samples.
	// May be nil.
	Invalidator Invalidator

	// PollingPeriod is how often the file is polled for changes.
	// Zero selects 500ms.
	PollingPeriod time.Duration

	Logger *observability.CoreLogger
}

// sample is one staged data point awaiting Drain.
type sample struct {
	series string
	x, y   float64
}

// Feed tails one sample file.
type Feed struct {
	mu sync.Mutex

	path        string
	invalidator Invalidator
	logger      *observability.CoreLogger

	pollingPeriod time.Duration
	delegate      *poller.Watcher
	wg            sync.WaitGroup

	// offset is how much of the file has been consumed; carry holds
	// a trailing partial line until its newline arrives.
	offset int64
	carry  []byte

	// nextX assigns x values to samples that carry none.
	nextX map[string]float64

	// pending holds parsed samples until the consumer drains them.
	pending []sample

	// byName is touched only from Drain, on the consumer thread.
	byName map[string]*series.LineSeries
}

func New(params Params) *Feed {
	if params.PollingPeriod == 0 {
		params.PollingPeriod = 500 * time.Millisecond
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	return &Feed{
		path:          params.Path,
		invalidator:   params.Invalidator,
		logger:        params.Logger,
		pollingPeriod: params.PollingPeriod,
		nextX:         make(map[string]float64),
		byName:        make(map[string]*series.LineSeries),
	}
}

// Start consumes the file's current content and begins polling it for
// appended samples.
func (f *Feed) Start() error {
	if _, err := f.ReadAvailable(); err != nil && !os.IsNotExist(err) {
		return err
	}

	f.delegate = poller.New()
	f.delegate.FilterOps(poller.Write, poller.Create)
	if err := f.delegate.Add(f.path); err != nil {
		f.delegate = nil
		return fmt.Errorf("datafeed: watch %s: %w", f.path, err)
	}

	grp, ctx := errgroup.WithContext(context.Background())
	f.wg.Add(2)

	grp.Go(func() error {
		defer f.wg.Done()
		f.loop(ctx)
		return nil
	})
	grp.Go(func() error {
		defer f.wg.Done()
		return f.delegate.Start(f.pollingPeriod)
	})

	// Wait until the poller is looping; until then Close is a no-op
	// and would leave the goroutines running.
	started := make(chan struct{})
	go func() {
		f.delegate.Wait()
		close(started)
	}()
	select {
	case <-started:
	case <-ctx.Done():
		return grp.Wait()
	}
	return nil
}

// Close stops the watcher and waits for its goroutines.
func (f *Feed) Close() {
	if f.delegate == nil {
		return
	}
	f.delegate.Close()
	f.wg.Wait()
}

func (f *Feed) loop(ctx context.Context) {
	for {
		select {
		case event := <-f.delegate.Event:
			if event.IsDir() {
				continue
			}
			n, err := f.ReadAvailable()
			if err != nil {
				f.logger.CaptureError(fmt.Errorf("datafeed: read: %w", err))
				continue
			}
			if n > 0 && f.invalidator != nil {
				f.invalidator.RequestInvalidate(true)
			}

		case err := <-f.delegate.Error:
			f.logger.CaptureError(fmt.Errorf("datafeed: watcher: %w", err))

		case <-f.delegate.Closed:
			return

		case <-ctx.Done():
			return
		}
	}
}

// ReadAvailable parses samples appended since the previous call and
// stages them for Drain, returning how many were staged. A truncated
// file restarts from the beginning.
func (f *Feed) ReadAvailable() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}
	if info.Size() < f.offset {
		f.logger.Debug("datafeed: file truncated, restarting",
			"path", f.path)
		f.offset = 0
		f.carry = nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return 0, err
	}

	added := 0
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			// Partial line; keep it for the next read.
			f.carry = append(f.carry, line...)
			f.offset += int64(len(line))
			break
		}
		if err != nil {
			return added, err
		}

		f.offset += int64(len(line))
		full := append(f.carry, line...)
		f.carry = nil
		if f.consumeLine(full) {
			added++
		}
	}
	return added, nil
}

// Drain applies every staged sample to m, creating series as new names
// appear. It must run on the thread that updates and renders the
// model. Returns how many samples were applied.
func (f *Feed) Drain(m *model.PlotModel) int {
	f.mu.Lock()
	batch := f.pending
	f.pending = nil
	f.mu.Unlock()

	for _, smp := range batch {
		s := f.byName[smp.series]
		if s == nil {
			s = series.NewLine(smp.series)
			f.byName[smp.series] = s
			m.AddSeries(s)
		}
		s.AddPoint(smp.x, smp.y)
	}
	return len(batch)
}

// consumeLine parses one sample line and stages it. Malformed lines
// are logged and skipped; the feed never stops on bad input. Called
// with f.mu held.
func (f *Feed) consumeLine(line []byte) bool {
	obj, err := simplejsonext.UnmarshalObject(line)
	if err != nil {
		f.logger.Debug("datafeed: skipping malformed line", "error", err)
		return false
	}
	if len(obj) == 0 {
		return false
	}

	name := DefaultSeriesName
	if v, ok := obj["series"].(string); ok && v != "" {
		name = v
	}

	y, ok := toFloat(obj["y"])
	if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
		return false
	}

	x, ok := toFloat(obj["x"])
	if !ok {
		x = f.nextX[name]
	}
	f.nextX[name] = x + 1

	f.pending = append(f.pending, sample{series: name, x: x, y: y})
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
