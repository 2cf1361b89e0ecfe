// Package buffer is the double-buffered cell grid the renderer draws into.
//
// Writes go to the back grid. Flush emits only the cells that differ from
// the front grid, coalescing horizontal runs of equal color into a single
// SGR sequence, and copies back to front once the write succeeded.
package buffer
