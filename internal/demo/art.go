// Package demo generates the built-in text art shown when no content is
// given. Static pieces are embedded; the rest are drawn from a seed so the
// same settings always give the same text.
package demo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownArt is returned by Lookup for an unrecognised name.
var ErrUnknownArt = errors.New("demo: unknown art")

// Art identifies one demo piece.
type Art uint8

const (
	Logo Art = iota
	Code
	Matrix
	Waves
	Spiral
	Boxes
	Mandala
	Maze
	Cells
	All
	numArts
)

// Info describes an art piece for listings.
type Info struct {
	Art         Art
	ID          string
	Name        string
	Description string
}

var infos = [numArts]Info{
	Logo:    {Logo, "logo", "Logo", "block letter logo with a prism"},
	Code:    {Code, "code", "Source Code", "a boxed Go snippet"},
	Matrix:  {Matrix, "matrix", "Digital Rain", "scattered binary digits"},
	Waves:   {Waves, "waves", "Wave Interference", "three summed sine waves in shade blocks"},
	Spiral:  {Spiral, "spiral", "Spiral Vortex", "an arm spiral around the center"},
	Boxes:   {Boxes, "boxes", "Box Drawing", "a checkered grid of box-drawing frames"},
	Mandala: {Mandala, "mandala", "Mandala", "six-fold radial symmetry"},
	Maze:    {Maze, "maze", "Maze", "a perfect maze carved by backtracking"},
	Cells:   {Cells, "cells", "Cellular Automaton", "rule 30 grown from a random row"},
	All:     {All, "all", "All Pieces", "every piece in sequence with headers"},
}

func (a Art) String() string {
	if a < numArts {
		return infos[a].ID
	}
	return fmt.Sprintf("art(%d)", uint8(a))
}

func (a Art) Info() Info {
	if a < numArts {
		return infos[a]
	}
	return Info{Art: a, ID: a.String()}
}

// Lookup finds an art piece by id, ignoring case.
func Lookup(id string) (Art, error) {
	for _, info := range infos {
		if strings.EqualFold(info.ID, id) {
			return info.Art, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArt, id)
}

// List returns every piece in display order, All last.
func List() []Info {
	return append([]Info(nil), infos[:]...)
}
