package collection

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/Ngipiek/rair-dapp/addr"
)

// DNSResolver defines the interface for DNS lookups.
// This allows tests to mock DNS resolution.
type DNSResolver interface {
	// LookupSRV looks up SRV records for the given service, proto, and name.
	LookupSRV(service, proto, name string) (string, []*net.SRV, error)

	// LookupTXT looks up TXT records for the given name.
	LookupTXT(name string) ([]string, error)
}

// defaultDNSResolver wraps the standard net package DNS functions.
type defaultDNSResolver struct{}

func (d *defaultDNSResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return net.LookupSRV(service, proto, name)
}

func (d *defaultDNSResolver) LookupTXT(name string) ([]string, error) {
	return net.LookupTXT(name)
}

// DefaultDNSResolver is the production DNS resolver using the net package.
var DefaultDNSResolver DNSResolver = &defaultDNSResolver{}

// SRVCollection is the SRV service label advertising a collection service
// endpoint: _rair._tcp.{domain}.
const SRVCollection = "rair"

// ResolveEndpoints resolves the collection service endpoints for a domain
// from its _rair._tcp SRV records. Returns host:port addresses sorted by
// priority then weight.
func ResolveEndpoints(domain string) ([]string, error) {
	return ResolveEndpointsWithResolver(domain, DefaultDNSResolver)
}

// ResolveEndpointsWithResolver resolves SRV records using the provided DNS
// resolver.
func ResolveEndpointsWithResolver(domain string, resolver DNSResolver) ([]string, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	_, addrs, err := resolver.LookupSRV(SRVCollection, "tcp", domain)
	if err != nil {
		return nil, fmt.Errorf("%w: SRV lookup for _%s._tcp.%s: %w", ErrDNSLookupFailed, SRVCollection, domain, err)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for _%s._tcp.%s", ErrNoEndpoints, SRVCollection, domain)
	}

	// Sort by priority (ascending), then by weight (descending)
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Priority != addrs[j].Priority {
			return addrs[i].Priority < addrs[j].Priority
		}
		return addrs[i].Weight > addrs[j].Weight
	})

	endpoints := make([]string, len(addrs))
	for i, srv := range addrs {
		host := strings.TrimSuffix(srv.Target, ".")
		endpoints[i] = fmt.Sprintf("%s:%d", host, srv.Port)
	}

	return endpoints, nil
}

// ResolveServiceAddress resolves the _rair.{domain} TXT record with a
// rair= prefix and returns the collection service's advertised operator
// address. Callers can pin this against the address configured locally.
func ResolveServiceAddress(domain string) (addr.Address, error) {
	return ResolveServiceAddressWithResolver(domain, DefaultDNSResolver)
}

// ResolveServiceAddressWithResolver resolves the service address using the
// provided DNS resolver. It looks up _rair.{domain} TXT records and parses
// the address from records with the "rair=" prefix (e.g., "rair=0x5aAe...").
func ResolveServiceAddressWithResolver(domain string, resolver DNSResolver) (addr.Address, error) {
	if domain == "" {
		return addr.Zero, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	name := "_rair." + domain
	txts, err := resolver.LookupTXT(name)
	if err != nil {
		return addr.Zero, fmt.Errorf("%w: TXT lookup for %s: %w", ErrDNSLookupFailed, name, err)
	}

	const prefix = "rair="
	var encoded string
	for _, txt := range txts {
		txt = strings.TrimSpace(txt)
		if strings.HasPrefix(txt, prefix) {
			encoded = strings.TrimSpace(strings.TrimPrefix(txt, prefix))
			break
		}
	}

	if encoded == "" {
		return addr.Zero, fmt.Errorf("%w: no rair= TXT record for %s", ErrInvalidServiceAddress, name)
	}

	a, err := addr.Parse(encoded)
	if err != nil {
		return addr.Zero, fmt.Errorf("%w: %q: %w", ErrInvalidServiceAddress, encoded, err)
	}
	return a, nil
}
