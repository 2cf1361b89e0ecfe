package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/prism/internal/config"
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/theme"
	"github.com/spf13/cobra"
)

const swatchWidth = 16

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

func listPatterns(cmd *cobra.Command, args []string) error {
	t := newTable("ID", "NAME", "PARAMETERS", "DESCRIPTION")
	for _, info := range pattern.List() {
		var names []string
		for _, f := range pattern.Fields(info.Kind) {
			names = append(names, f.Name)
		}
		t.Row(info.ID, info.Kind.Name(), strings.Join(names, ", "), info.Description)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

// swatch renders n blocks colored along g.
func swatch(g *gradient.Gradient, n int) string {
	var s strings.Builder
	for _, c := range g.Sample(n, 0) {
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render("█"))
	}
	return s.String()
}

func listThemes(cmd *cobra.Command, args []string) error {
	reg := theme.Default()
	if themeFile != "" {
		if _, err := reg.LoadFile(themeFile); err != nil {
			return err
		}
	}
	var names []string
	if category != "" {
		var ok bool
		if names, ok = reg.ByCategory(category); !ok {
			return fmt.Errorf("unknown category: %s (available: %v)", category, reg.Categories())
		}
	} else {
		names = reg.Names()
	}

	t := newTable("NAME", "CATEGORY", "COLORS", "DESCRIPTION")
	for _, name := range names {
		d, err := reg.Get(name)
		if err != nil {
			return err
		}
		g, err := reg.Gradient(name)
		if err != nil {
			return err
		}
		cat := d.Category
		if cat == "" {
			cat = theme.CustomCategory
		}
		t.Row(d.Name, cat, swatch(g, swatchWidth), d.Desc)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	ids := config.PresetPatterns()
	if len(args) > 0 {
		if len(config.ListPresets(args[0])) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no presets for pattern: %s\n", args[0])
			return nil
		}
		ids = args[:1]
	}
	t := newTable("PATTERN", "PRESET", "THEME", "SPEED", "PARAMS")
	for _, id := range ids {
		for _, name := range config.ListPresets(id) {
			p := config.GetPreset(id, name)
			params := p.ParamText()
			keys := make([]string, 0, len(params))
			for k := range params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, len(keys))
			for i, k := range keys {
				pairs[i] = k + "=" + params[k]
			}
			t.Row(id, name, p.Theme, fmt.Sprintf("%.1fx", p.Speed), strings.Join(pairs, " "))
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}
