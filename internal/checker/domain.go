package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	"golang.org/x/net/idna"
	"golang.org/x/net/proxy"

	"github.com/nao1215/nymix/internal/model"
)

// Resolver looks up name servers. *net.Resolver satisfies it.
type Resolver interface {
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

// WhoisClient queries WHOIS servers. *whois.Client satisfies it.
type WhoisClient interface {
	Whois(domain string, servers ...string) (string, error)
}

// Patterns that indicate a domain is registered. Checked first.
var whoisTakenPatterns = []string{
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"registrar iana id:",
	"domain status:",
	"this name is reserved",
}

// Patterns that indicate a domain is free.
var whoisAvailablePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"is available for registration",
	"domain is available",
	"no such domain",
	"domain name has not been registered",
	"no matching record",
}

// newResolver returns a pure Go resolver, pinned to address when set.
func newResolver(address string, timeout time.Duration) *net.Resolver {
	if address == "" {
		return net.DefaultResolver
	}
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: timeout}
			return d.DialContext(ctx, network, address)
		},
	}
}

// newWhoisClient returns a WHOIS client dialing through dialer when set.
func newWhoisClient(timeout time.Duration, dialer proxy.Dialer) *whois.Client {
	c := whois.NewClient().SetTimeout(timeout)
	if dialer != nil {
		c.SetDialer(dialer)
	}
	return c
}

// DomainChecker decides whether name.tld is registered.
type DomainChecker struct {
	resolver Resolver
	whois    WhoisClient
	timeout  time.Duration
	logger   *slog.Logger
}

// DomainName returns the ASCII (punycode) form of name.tld.
func DomainName(name, tld string) (string, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	domain, err := idna.Lookup.ToASCII(label + "." + tld)
	if err != nil {
		return "", fmt.Errorf("invalid domain name %q: %w", label+"."+tld, err)
	}
	return domain, nil
}

// Check returns the record for name under tld. It never fails: every
// problem is reported as an unknown record.
func (d *DomainChecker) Check(ctx context.Context, name, tld string) model.Record {
	target := model.DomainTarget(tld)

	domain, err := DomainName(name, tld)
	if err != nil {
		return model.NewUnknownRecord(name, target, err.Error())
	}

	lookupCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ns, err := d.resolver.LookupNS(lookupCtx, domain)
	if err == nil && len(ns) > 0 {
		return newRecord(name, target, model.StatusTaken, "")
	}
	if err == nil || isNotFound(err) {
		if d.whois == nil {
			return newRecord(name, target, model.StatusAvailable, "")
		}
		return d.confirm(ctx, name, target, domain)
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return model.NewUnknownRecord(name, target, fmt.Sprintf("dns lookup for %s timed out after %s", domain, d.timeout))
	}
	return model.NewUnknownRecord(name, target, fmt.Sprintf("dns lookup for %s failed: %v", domain, err))
}

// confirm asks WHOIS about a domain DNS reports as free. A WHOIS failure
// keeps the DNS verdict.
func (d *DomainChecker) confirm(ctx context.Context, name string, target model.Target, domain string) model.Record {
	if ctx.Err() != nil {
		return model.NewUnknownRecord(name, target, ctx.Err().Error())
	}

	answer, err := d.whois.Whois(domain)
	if err != nil {
		d.logger.Debug("whois lookup failed, keeping dns verdict", "domain", domain, "error", err)
		return newRecord(name, target, model.StatusAvailable, "whois unavailable, dns only")
	}

	switch classifyWhois(answer) {
	case model.StatusTaken:
		return newRecord(name, target, model.StatusTaken, "registered according to whois")
	case model.StatusAvailable:
		return newRecord(name, target, model.StatusAvailable, "confirmed by whois")
	default:
		return newRecord(name, target, model.StatusAvailable, "whois inconclusive, dns only")
	}
}

// classifyWhois maps a WHOIS answer to a status. Taken patterns win over
// available patterns; an answer matching neither is unknown.
func classifyWhois(answer string) model.Status {
	lower := strings.ToLower(answer)
	for _, pattern := range whoisTakenPatterns {
		if strings.Contains(lower, pattern) {
			return model.StatusTaken
		}
	}
	for _, pattern := range whoisAvailablePatterns {
		if strings.Contains(lower, pattern) {
			return model.StatusAvailable
		}
	}
	return model.StatusUnknown
}

// isNotFound reports whether err is an NXDOMAIN answer.
func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

// isTimeout reports whether err is a resolver timeout.
func isTimeout(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsTimeout
}

// newRecord builds a finished record.
func newRecord(name string, target model.Target, status model.Status, detail string) model.Record {
	return model.Record{
		Name:      name,
		Kind:      target.Kind,
		Target:    target.Name,
		Status:    status,
		Detail:    detail,
		CheckedAt: time.Now().UTC(),
	}
}
