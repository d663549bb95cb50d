package stats

import "time"

// Summary is the crawl_stats.json document emitted at crawl end (§4.10,
// §6). Key names match the filesystem contract exactly.
type Summary struct {
	CrawlStats     CrawlStats     `json:"crawl_stats"`
	ProxyStats     ProxyStats     `json:"proxy_stats"`
	PagesCrawled   int            `json:"pages_crawled"`
	FilesDownloaded map[string]int `json:"files_downloaded"`
	FailedURLs     []string       `json:"failed_urls"`
	PDFProcessing  PDFProcessing  `json:"pdf_processing"`
}

type CrawlStats struct {
	PagesProcessed int       `json:"pages_processed"`
	Errors         int       `json:"errors"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CrawlerVersion string    `json:"crawler_version"`
}

type ProxyStats struct {
	TotalUsed          int `json:"total_used"`
	SuccessfulRequests int `json:"successful_requests"`
	FailedRequests     int `json:"failed_requests"`
	Rotations          int `json:"rotations"`
}

type PDFProcessing struct {
	Processed    int            `json:"processed"`
	Failed       int            `json:"failed"`
	MethodCounts map[string]int `json:"method_counts"`
}
