package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tmccall/shallowblue/internal/chess"
)

var (
	lightSquare    = color.RGBA{233, 207, 163, 255}
	darkSquare     = color.RGBA{187, 136, 96, 255}
	highlightFill  = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	coordinateText = color.NRGBA{R: 60, G: 42, B: 24, A: 255}
)

// BoardRenderer produces PNG snapshots of a position, drawn from white's
// point of view with rank and file labels in the margin.
type BoardRenderer struct {
	squareSize int
	margin     int
}

func NewBoardRenderer(squareSize int) *BoardRenderer {
	if squareSize <= 0 {
		squareSize = 64
	}
	return &BoardRenderer{
		squareSize: squareSize,
		margin:     squareSize / 3,
	}
}

// RenderPNG draws the board, overlaying the from and to squares of the last
// move when one is given.
func (r *BoardRenderer) RenderPNG(board chess.Board, last *chess.Move) ([]byte, error) {
	boardSize := r.squareSize * 8
	totalWidth := boardSize + r.margin*2
	totalHeight := boardSize + r.margin*2
	origin := image.Point{X: r.margin, Y: r.margin}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, imagedraw.Src)

	r.drawSquares(img, origin)
	if last != nil {
		r.drawSquareOverlay(img, last.From, origin, highlightFill)
		r.drawSquareOverlay(img, last.To, origin, highlightFill)
	}
	if err := r.drawPieces(img, board, origin); err != nil {
		return nil, err
	}
	r.drawCoordinates(img, origin)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// squareRect maps a square to its pixel rectangle. Rank 7 is drawn at the
// top so white sits at the bottom of the image.
func (r *BoardRenderer) squareRect(sq chess.Square, origin image.Point) image.Rectangle {
	x := origin.X + sq.File*r.squareSize
	y := origin.Y + (7-sq.Rank)*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *BoardRenderer) drawSquares(img *image.RGBA, origin image.Point) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := chess.Square{File: file, Rank: rank}
			clr := lightSquare
			if (file+rank)%2 == 0 {
				clr = darkSquare
			}
			imagedraw.Draw(img, r.squareRect(sq, origin), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func (r *BoardRenderer) drawSquareOverlay(img *image.RGBA, sq chess.Square, origin image.Point, clr color.Color) {
	if !sq.InBounds() {
		return
	}
	imagedraw.Draw(img, r.squareRect(sq, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func (r *BoardRenderer) drawPieces(img *image.RGBA, board chess.Board, origin image.Point) error {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := chess.Square{File: file, Rank: rank}
			piece := board.At(sq)
			if piece.IsEmpty() {
				continue
			}
			glyph, err := renderPieceImage(piece, r.squareSize)
			if err != nil {
				return err
			}
			imagedraw.Draw(img, r.squareRect(sq, origin), glyph, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func (r *BoardRenderer) drawCoordinates(img *image.RGBA, origin image.Point) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(coordinateText),
		Face: basicfont.Face7x13,
	}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	for rank := 0; rank < 8; rank++ {
		label := string(rune('1' + rank))
		y := origin.Y + (7-rank)*r.squareSize + r.squareSize/2 + ascent/2
		width := drawer.MeasureString(label).Round()
		drawer.Dot = fixed.P(origin.X/2-width/2, y)
		drawer.DrawString(label)
	}
	for file := 0; file < 8; file++ {
		label := string(rune('a' + file))
		x := origin.X + file*r.squareSize + r.squareSize/2
		width := drawer.MeasureString(label).Round()
		drawer.Dot = fixed.P(x-width/2, origin.Y+8*r.squareSize+r.margin/2+ascent/2)
		drawer.DrawString(label)
	}
}
