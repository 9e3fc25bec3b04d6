package sandbox

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bytecodealliance/wasmtime-go/v15"
)

const (
	// fuelLimit is the per-evaluation fuel budget (§3 Evaluation Sandbox).
	fuelLimit = 1_000_000

	// defaultInputOffset is used when the guest does not export
	// get_input_buffer.
	defaultInputOffset = 1024

	// maxRequestLen mirrors the guest-side defence of §4.4; the host does
	// not enforce it directly, but it bounds what the reference guest
	// will accept. Evaluate itself is bounded only by linear memory size.
	maxRequestLen = 8192

	memoryExportName = "memory"
	logImportModule  = "host"
	logImportName    = "log"
	getInputBufferFn = "get_input_buffer"
	evaluateAccessFn = "evaluate_access"
)

// bindHostImports registers the fixed Host ABI Surface (§4.4) on linker:
// a single import, host.log(ptr, len), that reads len bytes from the
// calling instance's exported "memory" starting at ptr, decodes it as
// UTF-8 on a best-effort basis, and forwards it to logger. Invalid UTF-8
// is dropped silently; an out-of-range span is clamped, never faulted —
// a logging sink must never be the reason a policy evaluation traps.
func bindHostImports(linker *wasmtime.Linker, logger *slog.Logger) error {
	return linker.FuncWrap(logImportModule, logImportName,
		func(caller *wasmtime.Caller, ptr int32, length int32) {
			ext := caller.GetExport(memoryExportName)
			if ext == nil {
				return
			}
			mem := ext.Memory()
			if mem == nil {
				return
			}

			data := mem.UnsafeData(caller)
			start := clampOffset(ptr, len(data))
			end := clampOffset(ptr+length, len(data))
			if start >= end {
				return
			}

			msg := data[start:end]
			if !utf8.Valid(msg) {
				return
			}
			logger.Info("guest log", "message", string(msg))
		},
	)
}

// clampOffset never returns a value outside [0, limit]; negative inputs
// (a hostile or buggy guest) clamp to 0 rather than wrapping.
func clampOffset(v int32, limit int) int {
	if v < 0 {
		return 0
	}
	if int(v) > limit {
		return limit
	}
	return int(v)
}

// isFuelTrap classifies an execution-time failure as fuel exhaustion,
// preferring the engine's structured trap code and falling back to a
// substring match on the error text for engines/bindings that surface
// fuel exhaustion only as an opaque message.
func isFuelTrap(err error) bool {
	if trap, ok := err.(*wasmtime.Trap); ok {
		if code := trap.Code(); code != nil && *code == wasmtime.OutOfFuel {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "fuel") || strings.Contains(msg, "Fuel")
}
