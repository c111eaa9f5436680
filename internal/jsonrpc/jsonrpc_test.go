package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRequestCarriesVersionTag(t *testing.T) {
	req := NewRequest("tools/list", map[string]any{}, 7)

	require.Equal(t, Version, req.JSONRPC)
	require.Equal(t, "tools/list", req.Method)
	require.Equal(t, 7, req.ID)
}

func TestRequestOmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(NewRequest("ping", nil, nil))
	require.NoError(t, err)

	require.JSONEq(t, `{"jsonrpc":"2.0","method":"ping"}`, string(data))
}

func TestIsNotification(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &resp))
	require.True(t, resp.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`), &resp))
	require.False(t, resp.IsNotification())
}

func TestUnmarshalResult(t *testing.T) {
	resp := Response{Result: json.RawMessage(`{"tools":[{"name":"start_cpu_mining"}]}`)}

	var result struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}

	require.NoError(t, resp.UnmarshalResult(&result))
	require.Len(t, result.Tools, 1)
	require.Equal(t, "start_cpu_mining", result.Tools[0].Name)
}

func TestUnmarshalResultWithoutResult(t *testing.T) {
	resp := Response{ID: float64(3)}

	var v any
	require.Error(t, resp.UnmarshalResult(&v))
}

func TestIDEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int vs decoded float", int64(5), float64(5), true},
		{"int vs int", 5, 5, true},
		{"json number vs int", json.Number("5"), 5, true},
		{"different numbers", int64(5), float64(6), false},
		{"string vs string", "req-1", "req-1", true},
		{"different strings", "req-1", "req-2", false},
		{"string vs number", "5", float64(5), false},
		{"nil vs nil", nil, nil, true},
		{"nil vs number", nil, float64(5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IDEqual(tt.a, tt.b))
		})
	}
}
