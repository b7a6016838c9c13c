package profile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/fsutil"
)

// fileRoot is what a profile file may contain. Other blocks are left alone so
// profiles can live next to model files.
type fileRoot struct {
	Profiles []*profileBlock `hcl:"profile,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type profileBlock struct {
	Name   string   `hcl:"name,label"`
	Base   string   `hcl:"base,optional"`
	Remain hcl.Body `hcl:",remain"`
}

// LoadFiles reads every `profile` block from the .hcl files found under
// paths and registers the resulting profiles. Files are read in path order
// and a profile may derive from any profile registered before it.
func (r *Registry) LoadFiles(ctx context.Context, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Profile loader started.", "path_count", len(paths))

	var files []string
	seen := make(map[string]bool)
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return fmt.Errorf("failed to find profile files in %s: %w", path, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	parser := hclparse.NewParser()
	loaded := 0
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Profiles {
			p, err := r.decode(block)
			if err != nil {
				return fmt.Errorf("profile '%s' in %s: %w", block.Name, file, err)
			}
			if err := r.Register(p); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Loaded profile.", "name", p.Name, "base", block.Base, "file", file)
			loaded++
		}
	}

	logger.Info("Profiles loaded.", "files", len(files), "profiles", loaded)
	return nil
}

// decode applies the attributes of block on top of its base profile.
func (r *Registry) decode(block *profileBlock) (Profile, error) {
	var p Profile
	if block.Base != "" {
		base, err := r.Get(block.Base)
		if err != nil {
			return Profile{}, err
		}
		p = base
	}
	if diags := gohcl.DecodeBody(block.Remain, nil, &p); diags.HasErrors() {
		return Profile{}, diags
	}
	p.Name = block.Name
	return p, nil
}
