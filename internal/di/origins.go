package di

import (
	"net/url"
	"strings"
)

// websocketOriginPatterns converts CORS origins ("https://example.com") to
// the host patterns websocket.Accept matches against ("example.com").
func websocketOriginPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(origin, "/"))
	}
	return patterns
}
