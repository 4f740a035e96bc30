package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/tmccall/shallowblue/internal/chess"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

// The glyph files are authored in a single dark fill; the white set is
// produced by swapping the fill and adding an outline before parsing.
const (
	glyphFill      = `fill="#1f1f1f"`
	whiteGlyphFill = `fill="#f6f3ea" stroke="#1f1f1f" stroke-width="1.5"`
)

type pieceCacheKey struct {
	piece chess.Piece
	size  int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

func renderPieceImage(piece chess.Piece, size int) (image.Image, error) {
	key := pieceCacheKey{piece: piece, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	name := pieceAssetName(piece.Type)
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}
	if piece.Color == chess.White {
		data = bytes.ReplaceAll(data, []byte(glyphFill), []byte(whiteGlyphFill))
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}

func pieceAssetName(t chess.PieceType) string {
	var base string
	switch t {
	case chess.Pawn:
		base = "pawn"
	case chess.Knight:
		base = "knight"
	case chess.Bishop:
		base = "bishop"
	case chess.Rook:
		base = "rook"
	case chess.Queen:
		base = "queen"
	case chess.King:
		base = "king"
	}
	return fmt.Sprintf("assets/pieces/%s.svg", base)
}
