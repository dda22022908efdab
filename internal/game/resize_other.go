//go:build !windows

package game

func (g *Game) Resize(w int32, h int32) error {
	return ErrResizeUnsupported
}
