package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/prism/internal/renderer"
)

type jsonFrame struct {
	Time float64    `json:"time"`
	Rows [][]string `json:"rows"`
}

type jsonExport struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	FPS    int         `json:"fps"`
	Frames []jsonFrame `json:"frames"`
}

func writeJSON(w io.Writer, frames []renderer.Frame, opts Options) error {
	data := jsonExport{
		Width:  opts.Width,
		Height: opts.Height,
		FPS:    opts.FPS,
		Frames: make([]jsonFrame, len(frames)),
	}
	for i, f := range frames {
		rows := make([][]string, f.Height)
		for y := range rows {
			rows[y] = make([]string, f.Width)
			for x := range rows[y] {
				rows[y][x] = hex(f.At(x, y).Color)
			}
		}
		data.Frames[i] = jsonFrame{Time: f.Time, Rows: rows}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
