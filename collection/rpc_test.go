package collection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ngipiek/rair-dapp/addr"
)

func rpcServer(t *testing.T, handler func(req rpcRequest) rpcResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := handler(req)
		if resp.ID == 0 {
			resp.ID = req.ID
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRPCClientCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "testuser", user)
		assert.Equal(t, "testpass", pass)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "supportsroyalty", req.Method)

		resp := rpcResponse{ID: req.ID, Result: json.RawMessage(`true`)}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL, User: "testuser", Password: "testpass"})
	supports, err := client.SupportsRoyalty(context.Background(), addr.Address{0x01})
	require.NoError(t, err)
	assert.True(t, supports)
}

func TestRPCClientConnectionError(t *testing.T) {
	client := NewRPCClient(RPCConfig{URL: "http://localhost:1"})
	_, err := client.SupportsRoyalty(context.Background(), addr.Address{0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestRPCClientIDMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{ID: 999, Result: json.RawMessage(`true`)})
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.SupportsRoyalty(context.Background(), addr.Address{0x01})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetCollectionInfo(t *testing.T) {
	col := addr.Address{0xC0}
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		assert.Equal(t, "getcollectioninfo", req.Method)
		require.Len(t, req.Params, 2)
		assert.Equal(t, col.String(), req.Params[0])
		assert.Equal(t, float64(3), req.Params[1])
		return rpcResponse{Result: json.RawMessage(
			`{"starting_token":1,"ending_token":100,"mintable_remaining":42}`)}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	info, err := client.GetCollectionInfo(context.Background(), col, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), info.MintableRemaining)
	assert.Equal(t, uint64(1), info.StartingToken)
	assert.Equal(t, uint64(100), info.EndingToken)
}

func TestGetCollectionInfo_InvalidBounds(t *testing.T) {
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		return rpcResponse{Result: json.RawMessage(
			`{"starting_token":100,"ending_token":1,"mintable_remaining":42}`)}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.GetCollectionInfo(context.Background(), addr.Address{0xC0}, 0)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestMint(t *testing.T) {
	col := addr.Address{0xC0}
	to := addr.Address{0xB0}
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		assert.Equal(t, "mint", req.Method)
		require.Len(t, req.Params, 4)
		assert.Equal(t, col.String(), req.Params[0])
		assert.Equal(t, to.String(), req.Params[1])
		return rpcResponse{Result: json.RawMessage(`null`)}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	require.NoError(t, client.Mint(context.Background(), col, to, 0, 5))
}

func TestMint_Rejected(t *testing.T) {
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		return rpcResponse{Error: &RPCError{Code: -10, Message: "token already minted"}}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	err := client.Mint(context.Background(), addr.Address{0xC0}, addr.Address{0xB0}, 0, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMintRejected)
	assert.Contains(t, err.Error(), "already minted")

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -10, rpcErr.Code)
}

func TestRoyaltyInfo(t *testing.T) {
	receiver := addr.Address{0xAB}
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		assert.Equal(t, "royaltyinfo", req.Method)
		require.Len(t, req.Params, 4)
		assert.Equal(t, "gold tier", req.Params[3])
		result, _ := json.Marshal(royaltyInfoResult{Receiver: receiver.String(), Amount: 900})
		return rpcResponse{Result: result}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	got, amount, err := client.RoyaltyInfo(context.Background(), addr.Address{0xC0}, 5, 1000, "gold tier")
	require.NoError(t, err)
	assert.Equal(t, receiver, got)
	assert.Equal(t, uint64(900), amount)
}

func TestRoyaltyInfo_BadReceiver(t *testing.T) {
	server := rpcServer(t, func(req rpcRequest) rpcResponse {
		return rpcResponse{Result: json.RawMessage(`{"receiver":"not-an-address","amount":1}`)}
	})

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, _, err := client.RoyaltyInfo(context.Background(), addr.Address{0xC0}, 5, 1000, "")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
