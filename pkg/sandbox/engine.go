package sandbox

import (
	"github.com/bytecodealliance/wasmtime-go/v15"
)

// maxWasmStackBytes bounds the guest's call stack to defend against
// unbounded recursion inside a hostile artifact.
const maxWasmStackBytes = 65536

// NewEngine builds a Sandbox Engine configured for edge policy evaluation:
// fuel metering on, a capped call stack, SIMD/tail-call/relaxed-SIMD
// disabled to shrink the compiler's surface area, and bulk-memory plus
// multi-value kept on because the ABI assumes linear-memory writes and
// multi-value entry-point returns.
//
// The returned Engine is read-only and safe to share across every
// Evaluation Sandbox compiled against it.
func NewEngine() (*wasmtime.Engine, error) {
	cfg := wasmtime.NewConfig()

	cfg.SetConsumeFuel(true)
	cfg.SetMaxWasmStack(maxWasmStackBytes)
	cfg.SetMemoryGuaranteedDenseImageSize(0)
	cfg.SetWasmSIMD(false)
	cfg.SetWasmBulkMemory(true)
	cfg.SetWasmMultiValue(true)
	cfg.SetWasmReferenceTypes(false)
	cfg.SetWasmTailCall(false)
	cfg.SetWasmRelaxedSIMD(false)
	cfg.SetCraneliftOptLevel(wasmtime.OptLevelSpeedAndSize)

	engine := wasmtime.NewEngineWithConfig(cfg)
	if engine == nil {
		return nil, &LoadError{Stage: "engine", Message: "unsupported host or invalid configuration"}
	}
	return engine, nil
}
