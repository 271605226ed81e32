package http

import (
	"time"

	xutil "PumpStat/pkg/util"
)

// FormatTimestamp renders t the way every response carries timestamps.
func FormatTimestamp(t time.Time) string { return xutil.FormatTimestamp(t) }
