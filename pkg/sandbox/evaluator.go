package sandbox

import (
	"log/slog"
	"math"

	"github.com/bytecodealliance/wasmtime-go/v15"
)

// Verdict is the allow/deny outcome of one evaluation.
type Verdict struct {
	Allowed bool
}

// Evaluate runs one request through a fresh Evaluation Sandbox built from
// engine and module, following the protocol of spec.md §4.3:
//
//  1. allocate a fresh instance (private memory, host imports bound)
//  2. set the fuel counter
//  3. resolve the "memory" export
//  4. resolve the input offset via get_input_buffer, or default to 1024
//  5. validate the request fits at that offset
//  6. write the request bytes
//  7. call evaluate_access and map its return to a Verdict
//
// A Verdict is returned only when the guest returns normally; any trap,
// fuel exhaustion, or marshalling failure yields an error, never a
// default allow or deny.
func Evaluate(engine *wasmtime.Engine, module *wasmtime.Module, request []byte, logger *slog.Logger) (Verdict, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(request) > math.MaxInt32 {
		return Verdict{}, &PolicyExecutionError{Message: "request too large to address"}
	}

	store := wasmtime.NewStore(engine)
	if err := store.SetFuel(fuelLimit); err != nil {
		return Verdict{}, &PolicyExecutionError{Message: "failed to set fuel budget: " + err.Error()}
	}

	linker := wasmtime.NewLinker(engine)
	if err := bindHostImports(linker, logger); err != nil {
		return Verdict{}, &PolicyExecutionError{Message: "failed to register host imports: " + err.Error()}
	}

	instance, err := linker.Instantiate(store, module)
	if err != nil {
		return Verdict{}, classifyExecError(err)
	}

	memExport := instance.GetExport(store, memoryExportName)
	if memExport == nil || memExport.Memory() == nil {
		return Verdict{}, &FunctionNotFoundError{Name: memoryExportName}
	}
	mem := memExport.Memory()

	inputOffset, err := resolveInputOffset(store, instance)
	if err != nil {
		return Verdict{}, classifyExecError(err)
	}

	memSize := mem.DataSize(store)
	requiredEnd := uint64(inputOffset) + uint64(len(request))
	if requiredEnd > uint64(memSize) {
		return Verdict{}, &MemoryOutOfBoundsError{Offset: inputOffset}
	}

	data := mem.UnsafeData(store)
	copy(data[inputOffset:], request)

	evalFn := instance.GetExport(store, evaluateAccessFn)
	if evalFn == nil || evalFn.Func() == nil {
		return Verdict{}, &FunctionNotFoundError{Name: evaluateAccessFn}
	}

	result, err := evalFn.Func().Call(store, int32(inputOffset), int32(len(request)))
	if err != nil {
		return Verdict{}, classifyExecError(err)
	}

	code, ok := result.(int32)
	if !ok {
		return Verdict{}, &PolicyExecutionError{Message: "evaluate_access returned an unexpected type"}
	}

	return Verdict{Allowed: code != 0}, nil
}

// resolveInputOffset calls the optional get_input_buffer export, falling
// back to defaultInputOffset when the guest does not export it.
func resolveInputOffset(store *wasmtime.Store, instance *wasmtime.Instance) (uint32, error) {
	export := instance.GetExport(store, getInputBufferFn)
	if export == nil || export.Func() == nil {
		return defaultInputOffset, nil
	}

	result, err := export.Func().Call(store)
	if err != nil {
		return 0, err
	}
	offset, ok := result.(int32)
	if !ok {
		return 0, &PolicyExecutionError{Message: "get_input_buffer returned an unexpected type"}
	}
	return uint32(offset), nil
}

// classifyExecError maps a wasmtime call failure onto the taxonomy of
// spec.md §7: fuel exhaustion first (structured trap code, falling back
// to substring match), everything else as PolicyExecutionError.
func classifyExecError(err error) error {
	if isFuelTrap(err) {
		return &FuelExhaustedError{Consumed: fuelLimit}
	}
	return &PolicyExecutionError{Message: err.Error()}
}
