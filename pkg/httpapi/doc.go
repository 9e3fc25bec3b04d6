// Package httpapi exposes the edge policy service over HTTP: /health,
// /evaluate, /reload, /metrics, and /metrics/prom. Handlers are thin —
// they decode the request, call into pkg/sandbox or pkg/sysmem, and
// encode the response; they never touch wasmtime types directly.
package httpapi
