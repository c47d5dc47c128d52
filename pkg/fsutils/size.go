package fsutils

import "strconv"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with one decimal in binary units, e.g. "1.5 KB".
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	v := float64(size)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + sizeUnits[i]
}
