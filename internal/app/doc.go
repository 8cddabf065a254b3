// Package app contains the core application logic. It loads a preset and a
// save file, rebuilds the production graph, and renders the report,
// decoupled from any specific entrypoint like a CLI.
package app
