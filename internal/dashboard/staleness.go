package dashboard

import "fmt"

// IsStale reports whether a pane's last status timestamp is older than
// thresholdSecs relative to nowUnix. A nil timestamp (no status ever
// reported) is never stale.
func IsStale(statusTS *int64, thresholdSecs, nowUnix int64) bool {
	if statusTS == nil {
		return false
	}
	elapsed := nowUnix - *statusTS
	if elapsed < 0 {
		return false
	}
	return elapsed > thresholdSecs
}

// ElapsedSeconds returns the seconds since statusTS, or ok=false if there is
// no timestamp.
func ElapsedSeconds(statusTS *int64, nowUnix int64) (secs int64, ok bool) {
	if statusTS == nil {
		return 0, false
	}
	d := nowUnix - *statusTS
	if d < 0 {
		d = 0
	}
	return d, true
}

// FormatDuration renders a second count as HH:MM:SS.
func FormatDuration(secs int64) string {
	hours := secs / 3600
	mins := (secs % 3600) / 60
	rem := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, rem)
}
