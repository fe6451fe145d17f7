package gitform

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gopasspw/gopass/pkg/debug"
)

// maxRemoteSize bounds the size of fetched preferences.
const maxRemoteSize = 1024 * 1024

// Fetch retrieves configuration text from url. The complete text is
// returned; parsing happens afterwards. A nil client uses http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/plain")

	debug.V(1).Log("fetching preferences from %s", url)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if len(body) > maxRemoteSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, url, maxRemoteSize)
	}

	debug.V(1).Log("fetched %d bytes from %s", len(body), url)

	return string(body), nil
}
