package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/lhartmann/guestree/pkg/layout"
	"github.com/lhartmann/guestree/pkg/store"
)

// ToDOT converts the guest graph to Graphviz DOT format.
//
// Nodes are filled boxes colored by invite state; edges follow the per-kind
// style table. Undirected kinds are drawn without arrowheads and without
// ranking constraints, so only parent-child edges shape the generations.
// Each computed level becomes a rank=same subgraph to keep generations
// aligned. Render the result with [RenderSVG] or [RenderPNG].
func ToDOT(st *store.Store) string {
	var buf bytes.Buffer
	buf.WriteString("digraph FamilyTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  fontsize=10;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=9];\n")
	buf.WriteString("\n")

	for _, n := range Nodes(st) {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.ID, n.Label, n.FillColor)
	}

	buf.WriteString("\n")
	for _, e := range Edges(st) {
		attrs := fmt.Sprintf("style=%q, color=%q", e.Style, e.Color)
		if !e.Directed {
			attrs += ", dir=none, constraint=false"
		}
		if e.Label != "" {
			attrs += fmt.Sprintf(", label=%q, fontsize=8, fontcolor=%q", e.Label, e.Color)
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, attrs)
	}

	levels := layout.Levels(st, st.Root())
	grouped := layout.ByLevel(st, levels)
	for _, lvl := range layout.LevelOrder(grouped) {
		buf.WriteString("\n  { rank=same;")
		for _, id := range grouped[lvl] {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at the
// origin, which keeps embedded display consistent across renderers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
