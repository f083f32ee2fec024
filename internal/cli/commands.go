package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/kinetree/internal/presentation/biomod"
	"github.com/aretw0/kinetree/internal/presentation/graph"
	"github.com/aretw0/kinetree/internal/presentation/tui"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
	"gopkg.in/yaml.v3"
)

// Output formats of the realize and show commands.
const (
	FormatBiomod = "biomod"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// RealizeOptions are the flags of the realize command.
type RealizeOptions struct {
	Template string
	Trial    string
	Format   string
	Save     bool
	Quiet    bool
	// Status receives system messages; nil drops them.
	Status io.Writer
}

// RunRealize realizes a template against a trial and writes the model to w.
func RunRealize(ctx context.Context, app *App, opts RealizeOptions, w io.Writer) error {
	m, err := app.Engine.RealizeFrom(ctx, opts.Template, opts.Trial)
	if err != nil {
		return err
	}
	if opts.Save {
		if err := app.Engine.Save(ctx, m); err != nil {
			return err
		}
	}
	if err := WriteModel(w, m.Export(), opts.Format); err != nil {
		return err
	}
	if opts.Save && !opts.Quiet && opts.Status != nil {
		printSystemMessage(opts.Status, "Model '%s' saved.", m.Name())
	}
	return nil
}

// WriteModel encodes d in the given format.
func WriteModel(w io.Writer, d model.Description, format string) error {
	switch strings.ToLower(format) {
	case "", FormatBiomod:
		return biomod.Write(w, d)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want biomod, json or yaml)", format)
}

// RunValidate loads a template and reports its realization order.
func RunValidate(ctx context.Context, app *App, source string, w io.Writer) error {
	tpl, err := app.loadTemplate(ctx, source)
	if err != nil {
		return err
	}
	order, err := app.Engine.Validate(tpl)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Template '%s' is valid: %s\n", tpl.Name, strings.Join(order, " -> "))
	return nil
}

// RunGraph prints the Mermaid tree of a template, or of a stored model when
// fromStore is set.
func RunGraph(ctx context.Context, app *App, source string, fromStore bool, w io.Writer) error {
	var nodes []graph.Node
	if fromStore {
		m, err := app.Engine.Load(ctx, source)
		if err != nil {
			return err
		}
		nodes = graph.FromModel(m)
	} else {
		tpl, err := app.loadTemplate(ctx, source)
		if err != nil {
			return err
		}
		nodes = graph.FromTemplate(tpl)
	}
	fmt.Fprint(w, graph.GenerateMermaid(nodes, nil))
	return nil
}

// RunInspect prints a markdown summary of a stored model. With render set the
// markdown goes through glamour.
func RunInspect(ctx context.Context, app *App, name string, render bool, w io.Writer) error {
	m, err := app.Engine.Load(ctx, name)
	if err != nil {
		return err
	}
	md := tui.Summary(m)
	if render {
		out, err := tui.NewRenderer(0)(md)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		md = out
	}
	fmt.Fprint(w, md)
	return nil
}

// RunModels lists stored models.
func RunModels(ctx context.Context, app *App, w io.Writer) error {
	names, err := app.Engine.Models(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}

func (a *App) loadTemplate(ctx context.Context, source string) (*domain.Template, error) {
	loader := a.Engine.TemplateLoader()
	if loader == nil {
		return nil, fmt.Errorf("no template loader configured")
	}
	tpl, err := loader.LoadTemplate(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", source, err)
	}
	return tpl, nil
}
