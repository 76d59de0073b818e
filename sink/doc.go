// Package sink provides byte destinations and sources for the stream
// package: Buffer (in memory), File (positional file I/O), and Discard
// (position tracking only).
package sink
