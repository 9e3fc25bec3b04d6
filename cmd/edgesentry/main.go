// Command edgesentry is an edge-resident policy enforcement service: it
// loads a WebAssembly access-control artifact, runs it in a fuel-metered
// sandbox per request, and hot-reloads it when the artifact changes on
// disk.
//
// Usage:
//
//	# Start the server with default configuration
//	edgesentry run
//
//	# Start with a custom configuration file
//	edgesentry run --config /path/to/config.yaml
//
//	# Show version information
//	edgesentry version
package main

func main() {
	Execute()
}
