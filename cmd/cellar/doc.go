// Package main hosts the cellar CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration, logging, the guide
// retriever, and the rating backends into the pipeline, and surfaces
// listing inspection, guide indexing, and configuration scaffolding as
// subcommands.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
