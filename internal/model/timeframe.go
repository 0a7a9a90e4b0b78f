package model

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe selects how much history an analysis looks back over.
type Timeframe string

const (
	Timeframe1D  Timeframe = "1D"
	Timeframe5D  Timeframe = "5D"
	Timeframe1M  Timeframe = "1M"
	Timeframe3M  Timeframe = "3M"
	Timeframe1Y  Timeframe = "1Y"
	Timeframe5Y  Timeframe = "5Y"
	TimeframeYTD Timeframe = "YTD"
	TimeframeMax Timeframe = "Max"
)

// Timeframes lists every accepted value, in display order.
var Timeframes = []Timeframe{
	Timeframe1D, Timeframe5D, Timeframe1M, Timeframe3M,
	Timeframe1Y, Timeframe5Y, TimeframeYTD, TimeframeMax,
}

// lookbackDays maps fixed-window timeframes to their lookback in days.
// YTD and Max are resolved dynamically in Resolve. New timeframes are
// added here, not as branches.
var lookbackDays = map[Timeframe]int{
	Timeframe1D: 1,
	Timeframe5D: 5,
	Timeframe1M: 30,
	Timeframe3M: 90,
	Timeframe1Y: 365,
	Timeframe5Y: 1825,
}

// ParseTimeframe matches the input against the accepted set,
// case-insensitively.
func ParseTimeframe(s string) (Timeframe, error) {
	for _, tf := range Timeframes {
		if strings.EqualFold(strings.TrimSpace(s), string(tf)) {
			return tf, nil
		}
	}
	return "", fmt.Errorf("invalid timeframe %q, choose from %s", s, TimeframeList())
}

// TimeframeList renders the accepted set for error messages and help.
func TimeframeList() string {
	names := make([]string, len(Timeframes))
	for i, tf := range Timeframes {
		names[i] = string(tf)
	}
	return strings.Join(names, ", ")
}

// Valid reports whether tf is a member of the accepted set.
func (tf Timeframe) Valid() bool {
	_, ok := lookbackDays[tf]
	return ok || tf == TimeframeYTD || tf == TimeframeMax
}

// Resolve converts the timeframe into a concrete fetch range ending at
// now. For Max, maxHistory is true and the start date is meaningless.
func (tf Timeframe) Resolve(now time.Time) (start, end time.Time, maxHistory bool) {
	end = now
	switch tf {
	case TimeframeMax:
		return time.Time{}, end, true
	case TimeframeYTD:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, end, false
	default:
		days := lookbackDays[tf]
		return now.AddDate(0, 0, -days), end, false
	}
}
