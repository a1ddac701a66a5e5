package network

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// SRVService is the service label nodes publish: _catapult._tcp.{domain}.
const SRVService = "catapult"

const (
	defaultUpstream = "8.8.8.8:53"
	dnsTimeout      = 10 * time.Second
	edns0BufSize    = 4096
)

// SRVResolver looks up SRV records. It allows tests to replace DNS.
type SRVResolver interface {
	LookupSRV(service, proto, name string) (string, []*net.SRV, error)
}

// DNSResolver queries an upstream recursive resolver directly.
// With RequireDNSSEC set, answers without the AD flag are rejected.
type DNSResolver struct {
	Upstream      string
	RequireDNSSEC bool
	Timeout       time.Duration
}

// NewDNSResolver creates a resolver for upstream ("8.8.8.8:53" when empty).
func NewDNSResolver(upstream string, requireDNSSEC bool) *DNSResolver {
	if upstream == "" {
		upstream = defaultUpstream
	}
	return &DNSResolver{Upstream: upstream, RequireDNSSEC: requireDNSSEC, Timeout: dnsTimeout}
}

// LookupSRV implements SRVResolver. The cname result is always empty.
func (r *DNSResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	qname := fmt.Sprintf("_%s._%s.%s", service, proto, name)

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(qname), dns.TypeSRV)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0BufSize, r.RequireDNSSEC)

	timeout := r.Timeout
	if timeout == 0 {
		timeout = dnsTimeout
	}
	client := &dns.Client{Timeout: timeout}
	resp, _, err := client.Exchange(msg, r.Upstream)
	if err != nil {
		return "", nil, fmt.Errorf("%w: query %s SRV: %w", ErrDNSLookupFailed, qname, err)
	}
	if resp.Rcode != dns.RcodeSuccess && resp.Rcode != dns.RcodeNameError {
		return "", nil, fmt.Errorf("%w: query %s SRV: rcode %s",
			ErrDNSLookupFailed, qname, dns.RcodeToString[resp.Rcode])
	}
	if r.RequireDNSSEC && !resp.AuthenticatedData {
		return "", nil, fmt.Errorf("%w: AD flag not set for %s SRV", ErrDNSSECValidationFailed, qname)
	}

	var srvs []*net.SRV
	for _, rr := range resp.Answer {
		if srv, ok := rr.(*dns.SRV); ok {
			srvs = append(srvs, &net.SRV{
				Target:   strings.TrimSuffix(srv.Target, "."),
				Port:     srv.Port,
				Priority: srv.Priority,
				Weight:   srv.Weight,
			})
		}
	}
	return "", srvs, nil
}

// Endpoint is one discovered node.
type Endpoint struct {
	Host     string
	Port     uint16
	Priority uint16
	Weight   uint16
	Secure   bool
}

// RESTURL returns the base URL of the node's REST gateway.
func (e Endpoint) RESTURL() string {
	scheme := "http"
	if e.Secure {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// WebsocketURL returns the URL of the node's push channel.
func (e Endpoint) WebsocketURL() string {
	scheme := "ws"
	if e.Secure {
		scheme = "wss"
	}
	return scheme + "://" + net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port))) + "/ws"
}

// Discoverer finds nodes published under a domain.
type Discoverer struct {
	Resolver SRVResolver

	// Secure selects https/wss endpoints.
	Secure bool
}

// NewDiscoverer creates a Discoverer using resolver.
func NewDiscoverer(resolver SRVResolver, secure bool) *Discoverer {
	return &Discoverer{Resolver: resolver, Secure: secure}
}

// Discover resolves _catapult._tcp.{domain} and returns endpoints sorted by
// priority (ascending) then weight (descending).
func (d *Discoverer) Discover(domain string) ([]Endpoint, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	_, addrs, err := d.Resolver.LookupSRV(SRVService, "tcp", domain)
	if err != nil {
		return nil, fmt.Errorf("%w: SRV lookup for _%s._tcp.%s: %w", ErrDNSLookupFailed, SRVService, domain, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for _%s._tcp.%s", ErrNoEndpoints, SRVService, domain)
	}

	sort.SliceStable(addrs, func(i, j int) bool {
		if addrs[i].Priority != addrs[j].Priority {
			return addrs[i].Priority < addrs[j].Priority
		}
		return addrs[i].Weight > addrs[j].Weight
	})

	endpoints := make([]Endpoint, len(addrs))
	for i, srv := range addrs {
		endpoints[i] = Endpoint{
			Host:     strings.TrimSuffix(srv.Target, "."),
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
			Secure:   d.Secure,
		}
	}
	return endpoints, nil
}
