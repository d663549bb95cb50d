package proxy

import "time"

// Entry is one proxy ring member. A "direct" entry (Addr == "") means no
// proxy is applied; it is the permanent fallback when no file is configured
// or every health probe fails.
type Entry struct {
	Addr    string
	Healthy bool
	Speed   time.Duration
}

func directEntry() Entry {
	return Entry{Addr: "", Healthy: true}
}

// Stats mirrors the original ProxyManager's proxy_stats counters (§4.5).
type Stats struct {
	TotalUsed          int
	SuccessfulRequests int
	FailedRequests     int
	Rotations          int
}
