package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/gogpu/shaper"
)

func printBlob(blob *shaper.TextBlob, glyphs bool) {
	b := blob.Bounds()
	pterm.Printf("%d lines, %d glyphs, bounds %.2f x %.2f\n",
		blob.NumLines(), blob.NumGlyphs(), b.Width(), b.Height())
	_ = pterm.DefaultTable.WithHasHeader().WithData(linesTable(blob)).Render()
	_ = pterm.DefaultTable.WithHasHeader().WithData(runsTable(blob)).Render()
	if glyphs {
		_ = pterm.DefaultTable.WithHasHeader().WithData(glyphsTable(blob)).Render()
	}
}

func linesTable(blob *shaper.TextBlob) pterm.TableData {
	data := pterm.TableData{
		{"Line", "Baseline", "Width", "Ascent", "Descent", "Runs"},
	}
	for i, l := range blob.Lines() {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.2f", l.Baseline),
			fmt.Sprintf("%.2f", l.Width),
			fmt.Sprintf("%.2f", l.Ascent),
			fmt.Sprintf("%.2f", l.Descent),
			fmt.Sprintf("%d", len(l.Runs)),
		})
	}
	return data
}

func runsTable(blob *shaper.TextBlob) pterm.TableData {
	data := pterm.TableData{
		{"Line", "Run", "Range", "Font", "Level", "Script", "Language", "Glyphs", "Advance"},
	}
	for i, l := range blob.Lines() {
		for j, r := range l.Runs {
			data = append(data, []string{
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%d", j),
				fmt.Sprintf("[%d,%d)", r.Start, r.End),
				fmt.Sprintf("%v", r.Font),
				fmt.Sprintf("%d", r.Level),
				r.Script.String(),
				r.Language.String(),
				fmt.Sprintf("%d", len(r.Glyphs)),
				fmt.Sprintf("%.2f", r.Advance.X),
			})
		}
	}
	return data
}

func glyphsTable(blob *shaper.TextBlob) pterm.TableData {
	data := pterm.TableData{
		{"Line", "Run", "Glyph", "ID", "Cluster", "X", "Y"},
	}
	for i, l := range blob.Lines() {
		for j, r := range l.Runs {
			for k, g := range r.Glyphs {
				data = append(data, []string{
					fmt.Sprintf("%d", i),
					fmt.Sprintf("%d", j),
					fmt.Sprintf("%d", k),
					fmt.Sprintf("%d", g),
					fmt.Sprintf("%d", r.Clusters[k]),
					fmt.Sprintf("%.2f", r.Positions[k].X),
					fmt.Sprintf("%.2f", r.Positions[k].Y),
				})
			}
		}
	}
	return data
}
