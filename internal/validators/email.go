package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const dnsLookupTimeout = 3 * time.Second

// IsEmailFormat accepts a bare address ("user@host"), no display name.
func IsEmailFormat(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// EmailDomain returns the part after the last "@", or "" when there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsEmailDomainValid reports whether the domain has MX records or, failing
// that, resolves to an address.
func IsEmailDomainValid(email string) bool {
	domain := EmailDomain(email)
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsLookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	hosts, err := net.DefaultResolver.LookupHost(ctx, domain)
	return err == nil && len(hosts) > 0
}
