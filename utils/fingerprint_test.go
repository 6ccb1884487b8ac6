package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "https://tiktok.com/@x/video/1", "https://tiktok.com/@x/video/1"},
		{"fragment stripped", "https://tiktok.com/@x/video/1#comment", "https://tiktok.com/@x/video/1"},
		{"trailing hash", "https://tiktok.com/@x/video/1#", "https://tiktok.com/@x/video/1"},
		{"whitespace trimmed", "  https://instagram.com/p/abc \n", "https://instagram.com/p/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, PlatformTikTok, DetectPlatform("https://www.tiktok.com/@x/video/1"))
	assert.Equal(t, PlatformInstagram, DetectPlatform("https://INSTAGRAM.com/p/abc"))
	assert.Equal(t, PlatformFacebook, DetectPlatform("https://facebook.com/watch?v=1"))
	assert.Equal(t, PlatformFacebook, DetectPlatform("https://fb.watch/abc"))
	assert.Equal(t, "", DetectPlatform("https://youtube.com/watch?v=1"))
	assert.Equal(t, "", DetectPlatform("not a url"))
}

func TestFingerprintURLDeterministic(t *testing.T) {
	a := FingerprintURL(PlatformTikTok, "https://tiktok.com/@x/video/1")
	b := FingerprintURL(PlatformTikTok, "HTTPS://TIKTOK.COM/@x/video/1")
	assert.Equal(t, a, b, "case differences must not change the fingerprint")

	c := FingerprintURL(PlatformInstagram, "https://tiktok.com/@x/video/1")
	assert.NotEqual(t, a, c, "platform tag is part of the key")
}

func TestFingerprintFragmentEquality(t *testing.T) {
	withFrag := NormalizeURL("https://tiktok.com/@x/video/1#comment")
	without := NormalizeURL("https://tiktok.com/@x/video/1")
	assert.Equal(t,
		FingerprintURL(PlatformTikTok, withFrag),
		FingerprintURL(PlatformTikTok, without))
}

func TestFingerprintBytes(t *testing.T) {
	// sha256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		FingerprintBytes([]byte("abc")))
	assert.Len(t, FingerprintBytes(nil), 64)
}
