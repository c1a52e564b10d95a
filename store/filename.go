package store

import "time"

const (
	TimestampLayout = "2006-01-02 15:04:05"
	filenameLayout  = "20060102_150405"
)

// NewFilename names an entry created at t. Names have second resolution, so
// two entries created within the same second share a name and the later
// save replaces the earlier one.
func NewFilename(t time.Time) string {
	return t.Format(filenameLayout) + Ext
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
