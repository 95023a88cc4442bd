package dirx

import "time"

const (
	filetimeTicksPerSecond = 10_000_000

	// filetimeUnixEpochSeconds is the number of seconds between 1601-01-01
	// and 1970-01-01 (UTC).
	filetimeUnixEpochSeconds = 11644473600
)

// FiletimeToTime converts a FILETIME tick count (100ns intervals since
// 1601-01-01 UTC) to a time. The conversion is integer-exact over the whole
// uint64 range; 0, the unset value, maps to 1601-01-01.
func FiletimeToTime(ticks uint64) time.Time {
	sec := int64(ticks/filetimeTicksPerSecond) - filetimeUnixEpochSeconds
	nsec := int64(ticks%filetimeTicksPerSecond) * 100
	return time.Unix(sec, nsec)
}

// splitToUint64 joins a high/low 32-bit pair as returned by the find API
func splitToUint64(high, low uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}
