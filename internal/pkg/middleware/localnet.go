package middleware

import (
	"net/netip"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// The four private ranges the blog accepts traffic from.
var localRanges = []netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("172.16.0.0/12"),
}

// LocalNetworkOnly rejects requests that do not originate from a
// private network address. A forwarded-for header takes precedence over
// the transport peer address; anything unparseable is rejected.
func LocalNetworkOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := forwardedOrigin(c.Get(fiber.HeaderXForwardedFor))
		if origin == "" {
			origin = c.IP()
		}
		if !IsLocalAddress(origin) {
			return c.Status(fiber.StatusForbidden).SendString("Forbidden: local network only")
		}
		return c.Next()
	}
}

// IsLocalAddress reports whether addr falls inside one of the private
// ranges. Unparseable addresses are not local.
func IsLocalAddress(addr string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	for _, r := range localRanges {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}

// forwardedOrigin extracts the first hop from an X-Forwarded-For value.
func forwardedOrigin(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
