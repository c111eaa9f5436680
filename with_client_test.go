package universemcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tari-tools/universe-mcp-go/internal/servertest"
)

func fakeUniverseOptions(t *testing.T, cfg servertest.Config) []Option {
	t.Helper()

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("FAKE_UNIVERSE_CFG", string(raw))

	return []Option{
		WithServerPath(os.Args[0]),
		WithArgs("-test.run=TestHelperProcess", "--"),
		WithReadTimeout(5 * time.Second),
		WithCloseGrace(2 * time.Second),
	}
}

func TestWithClientRunsCallbackAndClosesAfter(t *testing.T) {
	opts := fakeUniverseOptions(t, servertest.Config{NotifyOnStart: true})

	var inside Client

	err := WithClient(context.Background(), func(c Client) error {
		inside = c

		return c.Ping(context.Background())
	}, opts...)
	require.NoError(t, err)

	// The client is closed once the callback returns.
	_, err = inside.ListTools(context.Background())
	require.ErrorIs(t, err, ErrClientClosed)
}

func TestWithClientPropagatesCallbackError(t *testing.T) {
	opts := fakeUniverseOptions(t, servertest.Config{})

	wantErr := fmt.Errorf("wallet empty")

	err := WithClient(context.Background(), func(Client) error {
		return wantErr
	}, opts...)
	require.ErrorIs(t, err, wantErr)
}

func TestWithClientStartFailure(t *testing.T) {
	called := false

	err := WithClient(context.Background(), func(Client) error {
		called = true

		return nil
	}, WithServerPath("/nonexistent/tari-universe"))

	require.Error(t, err)
	require.False(t, called)

	var launch *LaunchError
	require.ErrorAs(t, err, &launch)
}

func TestWithClientCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithClient(ctx, func(Client) error {
		return nil
	}, WithServerPath("/nonexistent/tari-universe"))

	require.ErrorIs(t, err, context.Canceled)
}
