package model

import "time"

// AdminSession is the local-only admin session record. Timestamp is
// epoch milliseconds; it is bumped on every successful authorization
// check (sliding expiration).
type AdminSession struct {
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	Timestamp int64  `json:"timestamp"`
}

// Age reports how long ago the session was last refreshed.
func (s AdminSession) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.Timestamp))
}
