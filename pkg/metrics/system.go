package metrics

import (
	"context"
	"runtime"
	"time"
)

// StartSystemCollector samples memory, goroutine and GC figures every
// interval until ctx is done.
func StartSystemCollector(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var lastGC uint32
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lastGC = sampleSystem(lastGC)
			}
		}
	}()
}

func sampleSystem(lastGC uint32) uint32 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	UpdateSystemMemoryUsage(ms.HeapInuse)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if ms.NumGC != lastGC && ms.NumGC > 0 {
		pause := ms.PauseNs[(ms.NumGC+255)%256]
		RecordSystemGCPauseTime(float64(pause) / float64(time.Millisecond))
	}
	return ms.NumGC
}
