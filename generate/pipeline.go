// Package generate wires the generation phases into one pipeline:
// declaration -> package resolution -> universe -> closure -> pruning ->
// emission. Each phase fully consumes its input before the next starts;
// any error aborts before output is written.
package generate

import (
	"path/filepath"

	"github.com/winterop/winrtgen/closure"
	"github.com/winterop/winrtgen/config"
	"github.com/winterop/winrtgen/emit"
	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/logger"
	"github.com/winterop/winrtgen/metadata"
	"github.com/winterop/winrtgen/nuget"
	"github.com/winterop/winrtgen/selector"
)

// Artifact describes a completed generation run.
type Artifact struct {
	// OutputPath is the written generated unit.
	OutputPath string
	// WatchPaths lists every metadata file consumed, for the build host
	// to register as regeneration triggers.
	WatchPaths []string
	// Namespaces and TypeCount describe the emitted tree.
	Namespaces int
	TypeCount  int
}

// Run executes the full pipeline for one declaration.
func Run(settings *config.Settings, declarationText string, open metadata.Opener) (*Artifact, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	decl, err := selector.ParseDeclaration(declarationText)
	if err != nil {
		return nil, err
	}

	locator := &nuget.Locator{
		PackageRoot:    settings.PackageRoot,
		OSMetadataRoot: settings.OSMetadataRoot,
	}
	deps, err := locator.Resolve(decl.Dependencies)
	if err != nil {
		return nil, err
	}
	files := deps.Files()
	logger.Infow("Resolved dependencies",
		"dependencies", len(decl.Dependencies),
		"metadata_files", len(files))

	universe, err := open(files)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open metadata universe")
	}

	includeFoundation := decl.Foundation || settings.IncludeFoundation

	limits := closure.NewLimits(universe)
	if includeFoundation {
		for _, ns := range closure.FoundationNamespaces {
			limits.InsertAll(ns)
		}
	}
	for _, sel := range decl.Selectors.Selectors() {
		if err := limits.Insert(sel); err != nil {
			return nil, err
		}
	}

	tree, err := limits.Build()
	if err != nil {
		return nil, err
	}
	if !includeFoundation {
		closure.Prune(tree)
	}

	outputPath := filepath.Join(settings.OutputDir, settings.OutputFile)
	emitter := &emit.Emitter{
		Universe:  universe,
		Formatter: settings.Formatter,
		Mode:      emit.Mode(settings.FormatterMode),
	}
	if err := emitter.Emit(tree, outputPath); err != nil {
		return nil, err
	}

	artifact := &Artifact{
		OutputPath: outputPath,
		WatchPaths: files,
		Namespaces: len(tree.Namespaces()),
		TypeCount:  tree.TypeCount(),
	}
	logger.Infow("Generation complete",
		"output", artifact.OutputPath,
		"namespaces", artifact.Namespaces,
		"types", artifact.TypeCount)
	return artifact, nil
}
