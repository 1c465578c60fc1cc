package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/nao1215/nymix/internal/model"
)

// maxTitleBytes bounds how much of a profile page is read to find its title.
const maxTitleBytes = 256 * 1024

// HandleChecker requests profile URLs to decide whether a handle is free.
type HandleChecker struct {
	platforms *Platforms
	client    *http.Client
	userAgent string
	timeout   time.Duration
	available []int
	taken     []int
	logger    *slog.Logger

	ratePerSecond float64
	rateBurst     int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// limiter returns the rate limiter of a platform, creating it on first use.
func (h *HandleChecker) limiter(platform string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.limiters[platform]; ok {
		return l
	}
	limit := rate.Inf
	if h.ratePerSecond > 0 {
		limit = rate.Limit(h.ratePerSecond)
	}
	l := rate.NewLimiter(limit, max(h.rateBurst, 1))
	h.limiters[platform] = l
	return l
}

// Check returns the record for name on platform. It never fails: every
// problem is reported as an unknown record.
func (h *HandleChecker) Check(ctx context.Context, name, platform string) model.Record {
	target := model.HandleTarget(platform)

	p, err := h.platforms.Get(platform)
	if err != nil {
		return model.NewUnknownRecord(name, target, err.Error())
	}
	handle := SanitizeHandle(name)
	if !p.Pattern.MatchString(handle) {
		return model.NewUnknownRecord(name, target, "invalid handle for "+p.Name)
	}

	if err := h.limiter(p.Name).Wait(ctx); err != nil {
		return model.NewUnknownRecord(name, target, fmt.Sprintf("rate limiter: %v", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	profileURL := p.ProfileURL(handle)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, profileURL, nil)
	if err != nil {
		return model.NewUnknownRecord(name, target, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Debug("profile request failed", "platform", p.Name, "url", profileURL, "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return model.NewUnknownRecord(name, target, fmt.Sprintf("request to %s timed out after %s", profileURL, h.timeout))
		}
		return model.NewUnknownRecord(name, target, fmt.Sprintf("request to %s failed: %v", profileURL, err))
	}
	defer resp.Body.Close()

	h.logger.Debug("profile fetched", "platform", p.Name, "handle", handle, "status", resp.StatusCode)

	switch {
	case slices.Contains(h.available, resp.StatusCode):
		return newRecord(name, target, model.StatusAvailable, "")
	case slices.Contains(h.taken, resp.StatusCode):
		if len(p.NotFoundMarkers) > 0 {
			title := pageTitle(io.LimitReader(resp.Body, maxTitleBytes))
			if containsAny(title, p.NotFoundMarkers) {
				return newRecord(name, target, model.StatusAvailable, "profile page reports not found")
			}
		}
		return newRecord(name, target, model.StatusTaken, "")
	default:
		return model.NewUnknownRecord(name, target, fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode))
	}
}

// pageTitle returns the lower-cased text of the first <title> element.
func pageTitle(r io.Reader) string {
	z := html.NewTokenizer(r)
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.ToLower(strings.TrimSpace(string(z.Text())))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// containsAny reports whether s contains one of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
