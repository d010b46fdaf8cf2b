package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/fsutil"
)

// Load walks the given path (a single .hcl file or a directory tree of them),
// parses every manifest, and builds the validated suite index.
func Load(ctx context.Context, path string) (*Index, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading suite manifests...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifest path", "path", path, "error", err)
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", path)
		return NewIndex(nil)
	}

	parser := hclparse.NewParser()
	var suites []*Suite

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		parsed, diags := ParseSuiteFile(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to process suite declarations in %s: %w", filePath, diags)
		}
		suites = append(suites, parsed...)
		logger.Debug("Loaded suite declarations from manifest", "file", filePath, "suites", len(parsed))
	}

	ix, err := NewIndex(suites)
	if err != nil {
		return nil, err
	}

	logger.Info("Manifest index loaded.", "suites", len(suites))
	return ix, nil
}
