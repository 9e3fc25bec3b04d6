//go:build !linux

package sysmem

func residentKB() uint64 { return 0 }
