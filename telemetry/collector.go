package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Collector accumulates WindowStats records in memory and, when a CSV
// path is configured, streams them to disk as they arrive.
type Collector struct {
	windowTicks int
	records     []WindowStats

	csvFile       *os.File
	headerWritten bool
}

// NewCollector builds a collector with a stats window of windowTicks
// ticks; callers consult WindowTicks to decide when to Record. If csvPath is empty, CSV export is disabled and Record only retains
// the stats in memory.
func NewCollector(windowTicks int, csvPath string) (*Collector, error) {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{windowTicks: windowTicks}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return nil, fmt.Errorf("creating telemetry csv %q: %w", csvPath, err)
		}
		c.csvFile = f
	}

	return c, nil
}

// WindowTicks returns the configured stats window, in ticks.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// Record appends a window's stats to the in-memory history and, if CSV
// export is enabled, appends a row to the open file.
func (c *Collector) Record(s WindowStats) error {
	c.records = append(c.records, s)

	if c.csvFile == nil {
		return nil
	}

	row := []WindowStats{s}
	var err error
	if !c.headerWritten {
		err = gocsv.Marshal(row, c.csvFile)
		c.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(row, c.csvFile)
	}
	if err != nil {
		return fmt.Errorf("writing telemetry row: %w", err)
	}
	return nil
}

// History returns every window recorded so far.
func (c *Collector) History() []WindowStats {
	return c.records
}

// Close flushes and closes the CSV file, if one is open.
func (c *Collector) Close() error {
	if c.csvFile == nil {
		return nil
	}
	return c.csvFile.Close()
}
