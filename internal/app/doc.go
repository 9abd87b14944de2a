// Package app wires stores and services into the object graph the CLI
// consumes, driven by a small Config.
package app
