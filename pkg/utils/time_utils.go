package utils

import "time"

func NowUnixSeconds() int64 { return time.Now().Unix() }

func NowUnixMillis() int64 { return time.Now().UnixMilli() }

// SecondsToMillis converts a provider epoch value in seconds to milliseconds.
// Payment-provider webhooks send current_start/current_end in seconds while
// subscription billing periods are stored in milliseconds.
func SecondsToMillis(sec int64) int64 {
	if sec <= 0 {
		return 0
	}
	return sec * 1000
}

// ExpiryAfterDays returns the unix-seconds timestamp `days` days from now.
func ExpiryAfterDays(days int) int64 {
	return time.Now().AddDate(0, 0, days).Unix()
}
