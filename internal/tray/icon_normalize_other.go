//go:build !windows

package tray

func platformNormalizeIcon(data []byte) []byte {
	return data
}
