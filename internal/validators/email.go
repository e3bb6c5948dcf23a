package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of an address can
// receive mail. MX records are checked first; a plain A/AAAA record
// counts too, since mail servers fall back to it for bare domains.
// Used at registration to reject obvious typos before sending anything.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	host := email[at+1:]

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(host)
	return err == nil && len(ips) > 0
}
