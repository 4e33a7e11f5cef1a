package metrics

import (
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

const (
	MetricAPIRequest = "api_request"
	MetricCPUPercent = "system_cpu_percent"
	MetricMemPercent = "system_mem_percent"
)

var (
	mu      sync.Mutex
	storage tstorage.Storage
)

// InitMetrics opens the embedded time-series store under the workdir.
// All record functions are no-ops until this succeeds.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(6*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Close flushes and closes the metrics store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

func insert(rows []tstorage.Row) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows(rows)
}

// RecordAPIRequest counts one handled HTTP request.
func RecordAPIRequest(path string, status int) {
	insert([]tstorage.Row{{
		Metric: MetricAPIRequest,
		Labels: []tstorage.Label{
			{Name: "path", Value: path},
			{Name: "status", Value: strconv.Itoa(status)},
		},
		DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: 1},
	}})
}

// SystemSnapshot is a point-in-time host resource reading.
type SystemSnapshot struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
	MemUsedMB  uint64  `json:"mem_used_mb"`
}

// Snapshot samples host cpu and memory usage.
func Snapshot() (SystemSnapshot, error) {
	var snap SystemSnapshot
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return snap, err
	}
	if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return snap, err
	}
	snap.MemPercent = vm.UsedPercent
	snap.MemUsedMB = vm.Used / 1024 / 1024
	return snap, nil
}

// RecordSystemMetrics samples the host and stores the gauges.
func RecordSystemMetrics() error {
	snap, err := Snapshot()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	insert([]tstorage.Row{
		{Metric: MetricCPUPercent, DataPoint: tstorage.DataPoint{Timestamp: now, Value: snap.CPUPercent}},
		{Metric: MetricMemPercent, DataPoint: tstorage.DataPoint{Timestamp: now, Value: snap.MemPercent}},
	})
	return nil
}
