package origin

import (
	"net/http"
	"net/netip"
	"strings"
)

// Telegram's published webhook source ranges.
var telegramRanges = []netip.Prefix{
	netip.MustParsePrefix("91.108.4.0/22"),
	netip.MustParsePrefix("149.154.160.0/20"),
}

var forwardingHeaders = []string{
	"X-Forwarded-For",
	"X-Real-Ip",
}

// ClientIP extracts the forwarded client address list from the request
// headers, or "" when no forwarding header is present.
func ClientIP(headers http.Header) string {
	for _, key := range forwardingHeaders {
		if value := headers.Get(key); value != "" {
			return value
		}
	}

	return ""
}

// IsTelegram reports whether any address in the comma-separated list falls
// inside Telegram's webhook ranges.
func IsTelegram(addressList string) bool {
	for _, part := range strings.Split(addressList, ",") {
		addr, err := netip.ParseAddr(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		for _, prefix := range telegramRanges {
			if prefix.Contains(addr) {
				return true
			}
		}
	}

	return false
}
