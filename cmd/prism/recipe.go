package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/prism/internal/config"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/playlist"
	"github.com/san-kum/prism/internal/preview"
	"github.com/san-kum/prism/internal/recipe"
	"github.com/san-kum/prism/internal/theme"
	"github.com/spf13/cobra"
)

// runCommandLine is the command that reproduces a browser selection.
func runCommandLine(res preview.Result, seed uint32) string {
	args := []string{"prism", "run", "--pattern", res.Pattern.String(), "--theme", res.Theme}
	if seed != 0 {
		args = append(args, "--seed", fmt.Sprint(seed))
	}
	return strings.Join(args, " ")
}

func browse(cmd *cobra.Command, args []string) error {
	k, err := pattern.Lookup(patternID)
	if err != nil {
		return err
	}
	reg := theme.Default()
	if themeFile != "" {
		if _, err := reg.LoadFile(themeFile); err != nil {
			return err
		}
	}
	res, err := preview.Run(preview.Options{Themes: reg, Pattern: k, Theme: themeName, Seed: seed})
	if err != nil {
		return err
	}
	if res.Chosen {
		fmt.Fprintln(cmd.OutOrStdout(), runCommandLine(res, seed))
	}
	return nil
}

func newRecipeCmd() *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:   "recipe",
		Short: "save and list pattern recipes",
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "save the pattern, theme, seed and params given by flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveRecipe,
	}
	addPatternFlags(saveCmd)
	saveCmd.Flags().StringVar(&playlistFile, "playlist", "", "also store the scenes of this playlist")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved recipes",
		Args:  cobra.NoArgs,
		RunE:  listRecipes,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print a recipe as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := recipeStore()
			if err != nil {
				return err
			}
			rec, err := st.Load(args[0])
			if err != nil {
				return err
			}
			return rec.WriteJSON(cmd.OutOrStdout())
		},
	}

	recipeCmd.AddCommand(saveCmd, listCmd, showCmd)
	return recipeCmd
}

func saveRecipe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}
	if _, err := loadThemes(cfg); err != nil {
		return err
	}
	params, err := cfg.PatternParams()
	if err != nil {
		return err
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	rec := recipe.Capture(name, params, cfg.Theme, cfg.Seed, cfg.Speed)
	if cfg.Playlist != "" {
		pl, err := playlist.Load(cfg.Playlist)
		if err != nil {
			return err
		}
		if _, err := pl.Scenes(nil); err != nil {
			return err
		}
		for _, e := range pl.Entries {
			rec.Scenes = append(rec.Scenes, recipe.Scene{Pattern: e.Pattern, Theme: e.Theme, Duration: e.Duration})
		}
	}

	st, err := recipeStore()
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recipe id: %s\n", id)
	return nil
}

func listRecipes(cmd *cobra.Command, args []string) error {
	st, err := recipeStore()
	if err != nil {
		return err
	}
	recs, err := st.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "no recipes found")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPATTERN\tTHEME\tSEED\tSCENES\tCREATED")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID[:8],
			r.Name,
			r.Pattern,
			r.Theme,
			r.Seed,
			len(r.Scenes),
			r.Created.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func newPlaylistCmd() *cobra.Command {
	playlistCmd := &cobra.Command{
		Use:   "playlist",
		Short: "work with playlist files",
	}
	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "validate a playlist and print its scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  checkPlaylist,
	}
	checkCmd.Flags().StringVar(&themeFile, "theme-file", "", "also load themes from this YAML file")
	playlistCmd.AddCommand(checkCmd)
	return playlistCmd
}

func checkPlaylist(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.ThemeFile = themeFile
	reg, err := loadThemes(cfg)
	if err != nil {
		return err
	}
	pl, err := playlist.Load(args[0])
	if err != nil {
		return err
	}
	scenes, err := pl.Scenes(func(name string) error {
		_, err := reg.Get(name)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPATTERN\tTHEME\tDURATION")
	total := 0.0
	for i, sc := range scenes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1fs\n", i+1, sc.Name, sc.Params.Kind(), sc.Theme, sc.Duration)
		total += sc.Duration
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d scenes, %.1fs per loop\n", len(scenes), total)
	return nil
}
