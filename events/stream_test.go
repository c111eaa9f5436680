package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventServer upgrades one connection, acknowledges subscriptions, and
// sends the scripted events after the subscribe arrives.
func fakeEventServer(t *testing.T, events []StreamEvent) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var msg subscriptionMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}

			switch msg.Type {
			case "subscribe":
				ack, _ := json.Marshal(map[string]any{"type": "subscribed", "client_id": "test-client"})
				if err := conn.WriteMessage(websocket.TextMessage, ack); err != nil {
					return
				}

				for _, ev := range events {
					data, err := json.Marshal(ev)
					require.NoError(t, err)

					if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return
					}
				}
			case "ping":
				pong, _ := json.Marshal(map[string]any{"type": "pong"})
				if err := conn.WriteMessage(websocket.TextMessage, pong); err != nil {
					return
				}
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStreamDeliversEventsAfterSubscribe(t *testing.T) {
	scripted := []StreamEvent{
		{
			ID:        "01J0000000000000000000TEST",
			Timestamp: 1735000000,
			Type:      TypeMiningStatusChanged,
			Data:      json.RawMessage(`{"cpu_mining":true,"gpu_mining":false,"mode":"Eco","cpu_utilization":42.5,"gpu_utilization":[]}`),
		},
		{
			ID:        "01J0000000000000000001TEST",
			Timestamp: 1735000060,
			Type:      TypeWalletBalanceChanged,
			Data:      json.RawMessage(`{"available":"1,000.000000 tXTR","timelocked":"0","total":"1,000.000000 tXTR"}`),
		},
	}

	srv := fakeEventServer(t, scripted)
	defer srv.Close()

	stream, err := Dial(context.Background(), nopLogger(), wsURL(srv))
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, stream.Subscribe(DefaultFilter()))

	var received []StreamEvent

	timeout := time.After(5 * time.Second)
	for len(received) < len(scripted) {
		select {
		case ev, ok := <-stream.Events():
			require.True(t, ok, "stream closed early: %v", stream.Err())
			received = append(received, ev)
		case <-timeout:
			t.Fatalf("timed out with %d events", len(received))
		}
	}

	// The subscribed ack must not surface as an event.
	require.Equal(t, TypeMiningStatusChanged, received[0].Type)
	require.Equal(t, TypeWalletBalanceChanged, received[1].Type)

	var status MiningStatusChanged
	require.NoError(t, received[0].DecodeData(&status))
	require.True(t, status.CPUMining)
	require.Equal(t, "Eco", status.Mode)

	var balance BalanceChanged
	require.NoError(t, received[1].DecodeData(&balance))
	require.Equal(t, "1,000.000000 tXTR", balance.Available)
}

func TestStreamCloseEndsEventChannel(t *testing.T) {
	srv := fakeEventServer(t, nil)
	defer srv.Close()

	stream, err := Dial(context.Background(), nopLogger(), wsURL(srv))
	require.NoError(t, err)

	require.NoError(t, stream.Close())

	select {
	case _, ok := <-stream.Events():
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close")
	}

	// Close twice is a no-op.
	require.NoError(t, stream.Close())
}

func TestStreamReportsServerDrop(t *testing.T) {
	srv := fakeEventServer(t, nil)

	stream, err := Dial(context.Background(), nopLogger(), wsURL(srv))
	require.NoError(t, err)
	defer stream.Close()

	srv.CloseClientConnections()

	select {
	case _, ok := <-stream.Events():
		require.False(t, ok)
		require.Error(t, stream.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close after server drop")
	}
}

func TestDialFailure(t *testing.T) {
	_, err := Dial(context.Background(), nopLogger(), "ws://127.0.0.1:1/nothing-here")
	require.Error(t, err)
}

func TestDefaultFilterIncludesEverything(t *testing.T) {
	f := DefaultFilter()

	require.Equal(t, []string{CategoryAll}, f.Categories)
	require.Empty(t, f.EventTypes)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.JSONEq(t, `{"categories":["all"],"event_types":[],"min_severity":"info"}`, string(data))
}
