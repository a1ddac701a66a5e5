package network

import (
	"errors"
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	srvs []*net.SRV
	err  error
}

func (s staticResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return "", s.srvs, s.err
}

// startDNS serves SRV answers for every query from a local UDP server.
func startDNS(t *testing.T, authenticated bool, answers ...*dns.SRV) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		m.AuthenticatedData = authenticated
		for _, a := range answers {
			rr := *a
			rr.Hdr = dns.RR_Header{Name: r.Question[0].Name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 60}
			m.Answer = append(m.Answer, &rr)
		}
		_ = w.WriteMsg(m)
	})

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })
	return pc.LocalAddr().String()
}

func TestDiscover_SortsByPriorityThenWeight(t *testing.T) {
	d := NewDiscoverer(staticResolver{srvs: []*net.SRV{
		{Target: "c.example.com.", Port: 3000, Priority: 20, Weight: 5},
		{Target: "a.example.com.", Port: 3000, Priority: 10, Weight: 1},
		{Target: "b.example.com.", Port: 3001, Priority: 10, Weight: 9},
	}}, false)

	eps, err := d.Discover("example.com")
	require.NoError(t, err)
	require.Len(t, eps, 3)
	assert.Equal(t, "b.example.com", eps[0].Host)
	assert.Equal(t, "a.example.com", eps[1].Host)
	assert.Equal(t, "c.example.com", eps[2].Host)
	assert.Equal(t, "http://b.example.com:3001", eps[0].RESTURL())
	assert.Equal(t, "ws://b.example.com:3001/ws", eps[0].WebsocketURL())
}

func TestDiscover_Secure(t *testing.T) {
	d := NewDiscoverer(staticResolver{srvs: []*net.SRV{{Target: "n.example.com", Port: 443}}}, true)
	eps, err := d.Discover("example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://n.example.com:443", eps[0].RESTURL())
	assert.Equal(t, "wss://n.example.com:443/ws", eps[0].WebsocketURL())
}

func TestDiscover_Errors(t *testing.T) {
	_, err := NewDiscoverer(staticResolver{}, false).Discover("")
	assert.ErrorIs(t, err, ErrDNSLookupFailed)

	_, err = NewDiscoverer(staticResolver{}, false).Discover("example.com")
	assert.ErrorIs(t, err, ErrNoEndpoints)

	_, err = NewDiscoverer(staticResolver{err: errors.New("boom")}, false).Discover("example.com")
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestNewDNSResolver_Defaults(t *testing.T) {
	r := NewDNSResolver("", false)
	assert.Equal(t, "8.8.8.8:53", r.Upstream)
	assert.False(t, r.RequireDNSSEC)
}

func TestDNSResolver_LookupSRV(t *testing.T) {
	addr := startDNS(t, false,
		&dns.SRV{Priority: 1, Weight: 10, Port: 3000, Target: "node1.example.com."},
		&dns.SRV{Priority: 0, Weight: 10, Port: 3000, Target: "node0.example.com."},
	)

	d := NewDiscoverer(NewDNSResolver(addr, false), false)
	eps, err := d.Discover("example.com")
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, "node0.example.com", eps[0].Host)
	assert.Equal(t, uint16(3000), eps[0].Port)
}

func TestDNSResolver_RequireDNSSEC(t *testing.T) {
	addr := startDNS(t, false, &dns.SRV{Port: 3000, Target: "node.example.com."})
	_, _, err := NewDNSResolver(addr, true).LookupSRV(SRVService, "tcp", "example.com")
	assert.ErrorIs(t, err, ErrDNSSECValidationFailed)

	addr = startDNS(t, true, &dns.SRV{Port: 3000, Target: "node.example.com."})
	_, srvs, err := NewDNSResolver(addr, true).LookupSRV(SRVService, "tcp", "example.com")
	require.NoError(t, err)
	require.Len(t, srvs, 1)
	assert.Equal(t, "node.example.com", srvs[0].Target)
}
