package sysmem

// TargetMB is the resident-memory budget advertised on /metrics.
const TargetMB = 10

// Sample is a point-in-time read of process memory usage.
type Sample struct {
	MemoryKB     uint64
	MemoryMB     float64
	TargetMB     int
	WithinTarget bool
}

// Read returns the current process's resident memory usage.
func Read() Sample {
	kb := residentKB()
	return Sample{
		MemoryKB:     kb,
		MemoryMB:     float64(kb) / 1024.0,
		TargetMB:     TargetMB,
		WithinTarget: kb < TargetMB*1024,
	}
}
