// Package sandbox is the policy runtime: it compiles untrusted WebAssembly
// policy artifacts, instantiates a fresh resource-bounded sandbox per
// evaluation, marshals request bytes across the host/guest memory
// boundary, and performs atomic, lock-free swaps of the active module
// when a new artifact appears on disk.
//
// The host/guest ABI is fixed: the guest imports "host.log" and exports
// "memory", "evaluate_access", and optionally "get_input_buffer". See
// abi.go for the exact contract.
package sandbox
