package host

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/google/uuid"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/crypto/blake2b"

	"github.com/example/vimicons/internal/icons"
)

// Icon is the host-owned handle for a bundled SVG resource. Handles are
// immutable from the caller's point of view; rasterisations are cached.
type Icon struct {
	id     uuid.UUID
	path   icons.Path
	data   []byte
	digest string
	width  float64
	height float64

	mu      sync.Mutex
	rasters map[int][]byte
}

func newIcon(path icons.Path, data []byte) (*Icon, error) {
	svg, err := parseSVG(data)
	if err != nil {
		return nil, err
	}

	sum := blake2b.Sum256(data)
	return &Icon{
		id:      uuid.New(),
		path:    path,
		data:    append([]byte(nil), data...),
		digest:  hex.EncodeToString(sum[:]),
		width:   svg.ViewBox.W,
		height:  svg.ViewBox.H,
		rasters: make(map[int][]byte),
	}, nil
}

func parseSVG(data []byte) (*oksvg.SvgIcon, error) {
	svg, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIconMalformed, err)
	}
	if svg.ViewBox.W <= 0 || svg.ViewBox.H <= 0 {
		return nil, fmt.Errorf("%w: missing or empty viewBox", ErrIconMalformed)
	}
	return svg, nil
}

// ID uniquely identifies this handle within the process.
func (i *Icon) ID() uuid.UUID { return i.id }

// Path returns the resource path the icon was resolved from.
func (i *Icon) Path() icons.Path { return i.path }

// Digest is the hex BLAKE2b-256 of the SVG bytes.
func (i *Icon) Digest() string { return i.digest }

// Size returns the SVG viewBox dimensions.
func (i *Icon) Size() (width, height float64) { return i.width, i.height }

// SVG returns a copy of the source bytes.
func (i *Icon) SVG() []byte {
	return append([]byte(nil), i.data...)
}

// PNG rasterises the icon into a size x size PNG.
func (i *Icon) PNG(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if cached, ok := i.rasters[size]; ok {
		return append([]byte(nil), cached...), nil
	}

	svg, err := parseSVG(i.data)
	if err != nil {
		return nil, err
	}
	svg.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(size, size, scanner), 1)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	i.rasters[size] = buf.Bytes()
	return append([]byte(nil), buf.Bytes()...), nil
}

func (i *Icon) String() string {
	return fmt.Sprintf("Icon(%s)", i.path)
}
