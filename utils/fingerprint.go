package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Platform tags recognised in post URLs.
const (
	PlatformTikTok    = "tt"
	PlatformInstagram = "ig"
	PlatformFacebook  = "fb"
)

// NormalizeURL trims whitespace and strips any #fragment so that links
// differing only by an anchor dedupe to the same post.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.Index(url, "#"); i >= 0 {
		url = url[:i]
	}
	return url
}

// DetectPlatform returns the platform tag for a post URL, or "" if the
// URL does not belong to a supported platform.
func DetectPlatform(url string) string {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(u, "instagram.com"):
		return PlatformInstagram
	case strings.Contains(u, "facebook.com"), strings.Contains(u, "fb.watch"):
		return PlatformFacebook
	}
	return ""
}

// FingerprintURL returns the dedupe hash for a post: sha256 over the
// platform tag and the lower-cased normalized URL.
func FingerprintURL(platform, url string) string {
	return FingerprintBytes([]byte(platform + ":" + strings.ToLower(url)))
}

// FingerprintBytes returns the hex sha256 digest of content.
func FingerprintBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
