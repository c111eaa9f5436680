package jsonrpc

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tari-tools/universe-mcp-go/internal/errors"
)

// chunkReader delivers data in controlled chunks to simulate pipe
// buffering.
type chunkReader struct {
	chunks []string
	index  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.index >= len(r.chunks) {
		return 0, io.EOF
	}

	n := copy(p, r.chunks[r.index])
	r.index++

	return n, nil
}

func TestWriteRequestAppendsDelimiterAndFlushes(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf, strings.NewReader(""))

	require.NoError(t, codec.WriteRequest(NewRequest("ping", map[string]any{}, 1)))

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	require.JSONEq(t, `{"jsonrpc":"2.0","method":"ping","params":{},"id":1}`, strings.TrimSpace(out))
}

func TestReadRecordSplitsOnNewlines(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"result":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"result":{"ok":true}}` + "\n"

	codec := NewCodec(io.Discard, strings.NewReader(input))

	first, err := codec.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, float64(1), first.ID)

	second, err := codec.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, float64(2), second.ID)

	_, err = codec.ReadRecord()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadRecordSpansChunkBoundaries(t *testing.T) {
	record := `{"jsonrpc":"2.0","id":9,"result":{"value":"split across reads"}}` + "\n"

	reader := &chunkReader{chunks: []string{record[:10], record[10:25], record[25:]}}
	codec := NewCodec(io.Discard, reader)

	resp, err := codec.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, float64(9), resp.ID)
}

func TestReadRecordSkipsBlankLines(t *testing.T) {
	input := "\n\n" + `{"jsonrpc":"2.0","id":4,"result":{}}` + "\n"
	codec := NewCodec(io.Discard, strings.NewReader(input))

	resp, err := codec.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, float64(4), resp.ID)
}

func TestReadRecordMalformed(t *testing.T) {
	codec := NewCodec(io.Discard, strings.NewReader("{not valid json\n"))

	_, err := codec.ReadRecord()

	var malformed *errors.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "{not valid json", malformed.RawData)
}

func TestReadRecordEOFOnClosedStream(t *testing.T) {
	codec := NewCodec(io.Discard, strings.NewReader(""))

	_, err := codec.ReadRecord()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadRecordHandlesNotificationEnvelope(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	codec := NewCodec(io.Discard, strings.NewReader(input))

	resp, err := codec.ReadRecord()
	require.NoError(t, err)
	require.True(t, resp.IsNotification())
	require.Equal(t, "notifications/initialized", resp.Method)
}
