//go:build windows

package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"

	"github.com/example/vimicons/internal/logging"
)

// platformNormalizeIcon wraps a PNG in a single-image ICO container, which is
// what the Windows notification area accepts.
func platformNormalizeIcon(data []byte) []byte {
	if len(data) < 4 {
		return nil
	}
	if isICO(data) {
		return data
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logging.Debugf("failed to decode tray icon png: %v", err)
		return nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		logging.Debugf("tray icon image has invalid bounds: %dx%d", cfg.Width, cfg.Height)
		return nil
	}

	icoData, err := wrapPNGAsICO(data, cfg.Width, cfg.Height)
	if err != nil {
		logging.Debugf("failed to wrap tray icon PNG as ico: %v", err)
		return nil
	}
	return icoData
}

func wrapPNGAsICO(pngData []byte, width, height int) ([]byte, error) {
	buf := &bytes.Buffer{}

	// ICONDIR: reserved, type (1 = icon), image count.
	for _, v := range []uint16{0, 1, 1} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	dimension := func(value int) byte {
		if value <= 0 || value >= 256 {
			return 0
		}
		return byte(value)
	}

	// ICONDIRENTRY
	buf.WriteByte(dimension(width))
	buf.WriteByte(dimension(height))
	buf.WriteByte(0) // palette size
	buf.WriteByte(0) // reserved
	fields := []interface{}{
		uint16(1),            // colour planes
		uint16(32),           // bits per pixel
		uint32(len(pngData)), // image size
		uint32(6 + 16),       // image offset
	}
	for _, v := range fields {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	if _, err := buf.Write(pngData); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isICO(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x01 && data[3] == 0x00
}
