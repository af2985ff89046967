package app

import "strconv"

// formatValue renders an adjusted parameter the way Config.WithOverrides
// parses it.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
