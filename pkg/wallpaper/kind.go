package wallpaper

import (
	"path/filepath"
	"strings"
)

// Kind is the closed classification of wallpaper content. Every reference
// resolves to exactly one Kind.
type Kind int

// Supported wallpaper kinds
const (
	KindImage Kind = iota
	KindVideo
	KindWeb
	KindStream
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindWeb:
		return "web"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name back to its Kind. Unrecognized names fall
// back to KindImage, matching the classifier's fallback rule.
func ParseKind(name string) Kind {
	switch strings.ToLower(name) {
	case "video":
		return KindVideo
	case "web":
		return KindWeb
	case "stream":
		return KindStream
	default:
		return KindImage
	}
}

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".gif": true}
	videoExts = map[string]bool{".mp4": true, ".avi": true, ".mkv": true, ".webm": true, ".mov": true}
	webExts   = map[string]bool{".html": true, ".htm": true}
)

// classificationRule pairs a predicate with the Kind it selects.
type classificationRule struct {
	name    string
	matches func(reference string) bool
	kind    Kind
}

// classificationRules is evaluated in order; the first match wins. The
// trailing catch-all makes classification total, so Classify never fails.
var classificationRules = []classificationRule{
	{name: "remote URL", matches: isRemoteURL, kind: KindWeb},
	{name: "image extension", matches: hasExtIn(imageExts), kind: KindImage},
	{name: "video extension", matches: hasExtIn(videoExts), kind: KindVideo},
	{name: "web page extension", matches: hasExtIn(webExts), kind: KindWeb},
	{name: "fallback", matches: func(string) bool { return true }, kind: KindImage},
}

// Classify maps a wallpaper reference (local path or URL) to its content
// Kind. It is pure and total: unknown references resolve to KindImage.
func Classify(reference string) Kind {
	for _, rule := range classificationRules {
		if rule.matches(reference) {
			return rule.kind
		}
	}
	return KindImage // unreachable, the catch-all always matches
}

// isRemoteURL reports whether the reference is an http(s) URL that does
// not point at a recognized local media file. URLs ending in a known
// image or video extension are classified by extension instead, so a
// direct link to an mp4 plays as video rather than rendering in a
// browser surface.
func isRemoteURL(reference string) bool {
	lower := strings.ToLower(reference)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(reference))
	return !imageExts[ext] && !videoExts[ext]
}

// hasExtIn returns a predicate matching references whose extension
// (case-insensitive) is in the given set.
func hasExtIn(exts map[string]bool) func(string) bool {
	return func(reference string) bool {
		return exts[strings.ToLower(filepath.Ext(reference))]
	}
}
