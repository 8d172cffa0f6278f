package dirsize

import "fmt"

// sizeUnits are the units FormatSize steps through before falling back to PB.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"} //nolint:gochecknoglobals // Lookup table

// FormatSize renders bytes with two decimals in the largest base-1024 unit
// that keeps the value below 1024, e.g. "1.50 KB". Values beyond TB are given in PB.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	value := float64(bytes)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}

		value /= 1024
	}

	return fmt.Sprintf("%.2f PB", value)
}
