package identity

import (
	"crypto/md5"
	"fmt"
)

// RGB is a color assigned to a contributor.
type RGB struct {
	R, G, B uint8
}

// ColorFor derives a color from an md5 digest of the author name, so the
// same author gets the same color across runs and metrics. The channels are
// inverted to bias away from very dark slices on white chart backgrounds.
func ColorFor(name string) RGB {
	sum := md5.Sum([]byte(name))
	return RGB{
		R: 255 - sum[0],
		G: 255 - sum[1],
		B: 255 - sum[2],
	}
}

// HexColorFor returns the author color as a "#rrggbb" string.
func HexColorFor(name string) string {
	c := ColorFor(name)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
