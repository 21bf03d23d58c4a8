package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/fsutil"
	"github.com/vk/critpathgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL project definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process. It is agnostic to the
// origin of the paths and merges blocks from every discovered file in
// discovery order, so a project may be split across several files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.FileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Project != nil {
			if model.Settings != nil {
				return nil, fmt.Errorf("duplicate project block in %s: a project may be declared only once", file)
			}
			settings, err := l.translateProject(root.Project)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Settings = settings
		}
		for _, act := range root.Activities {
			def, err := l.translateActivity(act)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Activities = append(model.Activities, def)
		}
	}

	if err := validateModel(model); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "activities", len(model.Activities))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all
// .hcl files found, without duplicates.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if _, wasSeen := seen[f]; !wasSeen {
					allFiles = append(allFiles, f)
					seen[f] = struct{}{}
				}
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
