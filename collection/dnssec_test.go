package collection

import (
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNSSECResolver_ImplementsDNSResolver(t *testing.T) {
	var _ DNSResolver = (*DNSSECResolver)(nil)
}

func TestNewDNSSECResolver_Defaults(t *testing.T) {
	r := NewDNSSECResolver("")
	assert.Equal(t, "8.8.8.8:53", r.Upstream)
}

func TestNewDNSSECResolver_Custom(t *testing.T) {
	r := NewDNSSECResolver("1.1.1.1:53")
	assert.Equal(t, "1.1.1.1:53", r.Upstream)
}

// dnssecServer runs a local UDP DNS server backed by handler and returns
// its address for use as the resolver upstream.
func dnssecServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &dns.Server{PacketConn: pc, Handler: handler}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

// authenticatedReply starts a reply to r with the AD flag set.
func authenticatedReply(r *dns.Msg) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(r)
	m.AuthenticatedData = true
	return m
}

func TestDNSSECResolver_LookupSRV(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := authenticatedReply(r)
		name := r.Question[0].Name
		m.Answer = []dns.RR{
			&dns.SRV{
				Hdr:      dns.RR_Header{Name: name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 60},
				Priority: 10, Weight: 5, Port: 8547,
				Target: "svc-a.example.com.",
			},
			&dns.SRV{
				Hdr:      dns.RR_Header{Name: name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 60},
				Priority: 20, Weight: 0, Port: 8548,
				Target: "svc-b.example.com.",
			},
		}
		_ = w.WriteMsg(m)
	})

	cname, srvs, err := NewDNSSECResolver(upstream).LookupSRV("rair", "tcp", "example.com")
	require.NoError(t, err)
	assert.Empty(t, cname)
	require.Len(t, srvs, 2)
	assert.Equal(t, "svc-a.example.com", srvs[0].Target)
	assert.Equal(t, uint16(8547), srvs[0].Port)
	assert.Equal(t, uint16(10), srvs[0].Priority)
	assert.Equal(t, "svc-b.example.com", srvs[1].Target)
}

func TestDNSSECResolver_LookupTXT_JoinsSplitStrings(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := authenticatedReply(r)
		name := r.Question[0].Name
		m.Answer = []dns.RR{
			&dns.TXT{
				Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
				// One logical record split into two character strings.
				Txt: []string{"rair=0x5aAeb6053F3E94C9b9", "A09f33669435E7Ef1BeAed"},
			},
		}
		_ = w.WriteMsg(m)
	})

	txts, err := NewDNSSECResolver(upstream).LookupTXT("_rair.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"rair=0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}, txts)
}

func TestDNSSECResolver_ADFlagMissing(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		name := r.Question[0].Name
		m.Answer = []dns.RR{
			&dns.TXT{
				Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
				Txt: []string{"rair=spoofed"},
			},
		}
		_ = w.WriteMsg(m)
	})

	_, err := NewDNSSECResolver(upstream).LookupTXT("_rair.example.com")
	assert.ErrorIs(t, err, ErrDNSSECValidationFailed)
}

func TestDNSSECResolver_ServerFailure(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeServerFailure)
		_ = w.WriteMsg(m)
	})

	_, err := NewDNSSECResolver(upstream).LookupTXT("_rair.example.com")
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestDNSSECResolver_NXDomain(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeNameError)
		m.AuthenticatedData = true
		_ = w.WriteMsg(m)
	})

	// NXDOMAIN passes DNSSEC validation but yields no records.
	_, err := NewDNSSECResolver(upstream).LookupTXT("_rair.missing.example")
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestResolveEndpoints_WithDNSSECResolver(t *testing.T) {
	upstream := dnssecServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := authenticatedReply(r)
		name := r.Question[0].Name
		m.Answer = []dns.RR{
			&dns.SRV{
				Hdr:      dns.RR_Header{Name: name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 60},
				Priority: 10, Weight: 1, Port: 8547,
				Target: "svc.example.com.",
			},
		}
		_ = w.WriteMsg(m)
	})

	endpoints, err := ResolveEndpointsWithResolver("example.com", NewDNSSECResolver(upstream))
	require.NoError(t, err)
	assert.Equal(t, []string{"svc.example.com:8547"}, endpoints)
}
