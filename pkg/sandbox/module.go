package sandbox

import "github.com/bytecodealliance/wasmtime-go/v15"

// Compile validates artifact against engine's enabled features and
// returns the compiled, immutable Module. Invalid bytecode or a
// feature-use mismatch is a LoadError and must not disturb whatever
// Module is currently published in the Registry.
func Compile(engine *wasmtime.Engine, artifact []byte) (*wasmtime.Module, error) {
	module, err := wasmtime.NewModule(engine, artifact)
	if err != nil {
		return nil, &LoadError{Stage: "compile", Message: "invalid policy artifact", Cause: err}
	}
	return module, nil
}
