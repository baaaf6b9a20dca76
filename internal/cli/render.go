package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/cache"
	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/render"
	"github.com/lhartmann/guestree/pkg/snapshot"
	"github.com/lhartmann/guestree/pkg/store"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family tree",
		Long: `Render the family tree.

People are drawn as boxes colored by invite state (gray: not invited, blue:
invited, green: invited with plus-one). Parent-child edges are solid arrows;
other relationship types get their own line style and label. Generations are
aligned per rank using BFS levels from the chosen root.

SVG and PNG output is cached locally keyed by the snapshot contents, so
re-rendering an unchanged guest list is instant.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.cfg.Render.Format
			}
			switch format {
			case formatSVG, formatPNG, formatDOT:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: svg, png, dot)", format)
			}
			if output == "" {
				output = "tree." + format
			}

			st, err := c.loadStore()
			if err != nil {
				return err
			}
			if st.PersonCount() == 0 {
				printInfo("Nothing to render. Add people with: %s person add <name>", appName)
				return nil
			}

			return c.runRender(cmd.Context(), st, format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", "", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default tree.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender produces the artifact (through the cache) and writes it out.
func (c *CLI) runRender(ctx context.Context, st *store.Store, format, output string, noCache bool) error {
	dot := render.ToDOT(st)

	if format == formatDOT {
		if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Rendered tree")
		printFile(output)
		return nil
	}

	artifact, cacheHit, err := c.renderArtifact(ctx, st, dot, format, noCache)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, artifact, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered tree")
	printFile(output)
	printGraphStats(st.PersonCount(), st.RelationshipCount(), cacheHit)
	return nil
}

// renderArtifact returns the rendered bytes for format, consulting the
// artifact cache keyed by the canonical snapshot bytes.
func (c *CLI) renderArtifact(ctx context.Context, st *store.Store, dot, format string, noCache bool) ([]byte, bool, error) {
	artifacts := c.newCache(noCache)
	defer artifacts.Close()

	snapBytes, err := snapshot.Marshal(st)
	if err != nil {
		return nil, false, err
	}
	key := cache.ArtifactKey(cache.Hash(snapBytes), format)

	if data, ok, err := artifacts.Get(ctx, key); err == nil && ok {
		c.Logger.Debug("artifact cache hit", "format", format)
		return data, true, nil
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering tree...")
	spinner.Start()

	var data []byte
	switch format {
	case formatPNG:
		data, err = render.RenderPNG(ctx, dot)
	default:
		data, err = render.RenderSVG(ctx, dot)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, false, fmt.Errorf("render %s: %w", format, err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d people", st.PersonCount()))

	if err := artifacts.Set(ctx, key, data, c.cacheTTL()); err != nil {
		c.Logger.Debug("artifact cache write failed", "err", err)
	}
	return data, false, nil
}
