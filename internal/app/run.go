package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/eqgen/internal/analyser"
	"github.com/specialistvlad/eqgen/internal/artifact"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/generator"
	"github.com/specialistvlad/eqgen/internal/report"
)

// ErrModelHasErrors is returned by Run when the analysis found errors. The
// report, if requested, is still written.
var ErrModelHasErrors = errors.New("the model has errors")

// Run loads, analyses and generates the configured model. Issues are printed
// to the App's output; artifacts go to Config.OutputDir.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return err
	}
	a.logger.Info("Model loaded.", "model", m.Name, "components", len(m.Components))

	res := analyser.Analyse(ctx, m, analyser.Options{Externals: a.config.Externals})
	printIssues(a.outW, res, a.config.NoColor)

	w, err := artifact.NewWriter(a.config.OutputDir, a.config.Compress)
	if err != nil {
		return err
	}
	defer w.Close()

	if a.config.ReportFile != "" {
		doc, err := report.Render(ctx, res)
		if err != nil {
			return err
		}
		path, err := w.Write(ctx, a.config.ReportFile, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "wrote %s\n", path)
	}

	if res.HasErrors() {
		return fmt.Errorf("%w: %w", ErrModelHasErrors, res.Err())
	}

	p, err := a.profiles.Get(a.config.Profile)
	if err != nil {
		return err
	}
	out, err := generator.Generate(ctx, res, p, generator.Options{FileName: a.config.FileName})
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}
	paths, err := w.WriteAll(ctx, out.Files())
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintf(a.outW, "wrote %s\n", path)
	}

	a.logger.Debug("App.Run method finished.", "files", len(paths))
	return nil
}
