/*
Responsibilities
- Map a canonical URL's path suffix to a FileCategory via the fixed table of
  §6, or decide the URL is an HTML page candidate (no recognized suffix).

This is a pure function: the classifier holds no state and consults nothing
but the table below, grounded in the original Python source's suffix-to-
category dictionaries.
*/
package classify

import (
	"strings"
)

// suffixTable maps a lowercase, dot-prefixed suffix to its FileCategory.
// A suffix present but absent from this table still yields CategoryOther
// (§3 FileCategory: "a suffix with no table match but present yields
// other").
var suffixTable = map[string]FileCategory{
	".pdf":  CategoryDocument,
	".doc":  CategoryDocument,
	".docx": CategoryDocument,
	".txt":  CategoryDocument,
	".rtf":  CategoryDocument,
	".odt":  CategoryDocument,

	".xls":  CategorySpreadsheet,
	".xlsx": CategorySpreadsheet,
	".csv":  CategorySpreadsheet,
	".ods":  CategorySpreadsheet,

	".ppt":  CategoryPresentation,
	".pptx": CategoryPresentation,
	".odp":  CategoryPresentation,

	".zip": CategoryArchive,
	".rar": CategoryArchive,
	".7z":  CategoryArchive,
	".tar": CategoryArchive,
	".gz":  CategoryArchive,

	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".png":  CategoryImage,
	".gif":  CategoryImage,
	".bmp":  CategoryImage,
	".svg":  CategoryImage,

	".mp3": CategoryAudio,
	".wav": CategoryAudio,
	".ogg": CategoryAudio,
	".m4a": CategoryAudio,

	".mp4": CategoryVideo,
	".avi": CategoryVideo,
	".mkv": CategoryVideo,
	".mov": CategoryVideo,

	".py":   CategoryCode,
	".js":   CategoryCode,
	".html": CategoryCode,
	".css":  CategoryCode,
	".java": CategoryCode,
	".cpp":  CategoryCode,
	".h":    CategoryCode,

	".json": CategoryData,
	".xml":  CategoryData,
	".yaml": CategoryData,
	".sql":  CategoryData,

	".epub": CategoryEbook,
	".mobi": CategoryEbook,
	".azw":  CategoryEbook,
}

// Classify determines the Action for a URL path. It never errors: every
// suffixed path resolves to exactly one category (CategoryOther as the
// fallback), and an unsuffixed path always resolves to ActionCrawlPage.
func Classify(path string) Action {
	suffix := Suffix(path)
	if suffix == "" {
		return Action{Kind: ActionCrawlPage}
	}

	if category, ok := suffixTable[suffix]; ok {
		return Action{Kind: ActionDownloadFile, Category: category}
	}
	return Action{Kind: ActionDownloadFile, Category: CategoryOther}
}

// Suffix returns the lowercase, dot-prefixed suffix of a URL path, or "" if
// the final path segment has no suffix (e.g. "/docs/" or "/api").
func Suffix(path string) string {
	lastSlash := strings.LastIndex(path, "/")
	segment := path
	if lastSlash != -1 {
		segment = path[lastSlash+1:]
	}

	dot := strings.LastIndex(segment, ".")
	if dot <= 0 || dot == len(segment)-1 {
		return ""
	}
	return strings.ToLower(segment[dot:])
}
