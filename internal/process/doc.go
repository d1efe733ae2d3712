// Package process terminates the headless browser started for PDF snapshots
// together with the helper processes it spawns.
package process
