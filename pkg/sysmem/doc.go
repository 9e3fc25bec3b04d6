// Package sysmem samples the current process's resident memory in
// kilobytes, for the /metrics footprint report. Linux is read directly
// from /proc/self/status; other platforms report zero.
package sysmem
