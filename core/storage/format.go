package storage

import "github.com/dustin/go-humanize"

// FormatBytes renders a size in IEC units, e.g. "1.5 KiB".
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}
