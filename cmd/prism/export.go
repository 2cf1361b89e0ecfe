package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/export"
	"github.com/spf13/cobra"
)

// exportPath picks the output file: flag value, or prism-<pattern> plus the
// format's extension.
func exportPath(out, patternID string, f export.Format) string {
	if out != "" {
		return out
	}
	return "prism-" + patternID + f.Ext()
}

func exportPattern(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	r, cfg, err := newRenderer(cmd, args, termenv.TrueColor)
	if err != nil {
		return err
	}
	opts := export.Options{
		Width:   width,
		Height:  height,
		Frames:  frameCount,
		FPS:     frameRate,
		Start:   startTime,
		Profile: termenv.TrueColor,
		Fill:    cfg.FillMode(),
	}

	path := exportPath(outFile, cfg.Pattern, f)
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	bw := bufio.NewWriter(w)
	if err := export.Write(bw, f, r, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
	return nil
}
