package bot

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// AttachmentFetcher downloads the raw bytes behind an attachment URL.
// Injectable so the workflow never depends on the Discord CDN in tests.
type AttachmentFetcher func(url string) ([]byte, error)

const maxAttachmentBytes = 20 << 20

// fetchAttachment is the default fetcher: a plain bounded HTTP GET.
func fetchAttachment(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch attachment: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	return data, nil
}
