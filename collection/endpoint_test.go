package collection

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResolver is a DNSResolver backed by fixed records.
type mockResolver struct {
	srvs   []*net.SRV
	srvErr error
	txts   []string
	txtErr error
}

func (m *mockResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return "", m.srvs, m.srvErr
}

func (m *mockResolver) LookupTXT(name string) ([]string, error) {
	return m.txts, m.txtErr
}

func TestResolveEndpoints_SortedByPriorityThenWeight(t *testing.T) {
	resolver := &mockResolver{srvs: []*net.SRV{
		{Target: "backup.example.com.", Port: 8547, Priority: 20, Weight: 0},
		{Target: "light.example.com.", Port: 8547, Priority: 10, Weight: 1},
		{Target: "heavy.example.com.", Port: 8548, Priority: 10, Weight: 9},
	}}

	endpoints, err := ResolveEndpointsWithResolver("example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"heavy.example.com:8548",
		"light.example.com:8547",
		"backup.example.com:8547",
	}, endpoints)
}

func TestResolveEndpoints_Errors(t *testing.T) {
	_, err := ResolveEndpointsWithResolver("", &mockResolver{})
	assert.ErrorIs(t, err, ErrDNSLookupFailed)

	_, err = ResolveEndpointsWithResolver("example.com", &mockResolver{srvErr: errors.New("timeout")})
	assert.ErrorIs(t, err, ErrDNSLookupFailed)

	_, err = ResolveEndpointsWithResolver("example.com", &mockResolver{})
	assert.ErrorIs(t, err, ErrNoEndpoints)
}

func TestResolveServiceAddress(t *testing.T) {
	resolver := &mockResolver{txts: []string{
		"v=spf1 -all",
		"rair=0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	}}

	a, err := ResolveServiceAddressWithResolver("example.com", resolver)
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", a.String())
}

func TestResolveServiceAddress_Errors(t *testing.T) {
	_, err := ResolveServiceAddressWithResolver("example.com", &mockResolver{txts: []string{"other=1"}})
	assert.ErrorIs(t, err, ErrInvalidServiceAddress)

	_, err = ResolveServiceAddressWithResolver("example.com", &mockResolver{txts: []string{"rair=banana"}})
	assert.ErrorIs(t, err, ErrInvalidServiceAddress)

	_, err = ResolveServiceAddressWithResolver("example.com", &mockResolver{txtErr: errors.New("timeout")})
	assert.ErrorIs(t, err, ErrDNSLookupFailed)
}

func TestResolveConfig_Layering(t *testing.T) {
	// Preset only.
	cfg, err := ResolveConfig(nil, nil, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8547", cfg.URL)

	// Env overrides preset.
	cfg, err = ResolveConfig(nil, map[string]string{
		"RAIR_COLLECTION_RPC_URL":  "http://env:1234",
		"RAIR_COLLECTION_RPC_USER": "envuser",
	}, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://env:1234", cfg.URL)
	assert.Equal(t, "envuser", cfg.User)

	// Explicit overrides beat env.
	cfg, err = ResolveConfig(&RPCConfig{URL: "http://flag:9"}, map[string]string{
		"RAIR_COLLECTION_RPC_URL": "http://env:1234",
	}, "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9", cfg.URL)

	// Mainnet has no preset.
	_, err = ResolveConfig(nil, nil, "mainnet")
	require.Error(t, err)
}
