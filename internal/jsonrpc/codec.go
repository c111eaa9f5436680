package jsonrpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tari-tools/universe-mcp-go/internal/errors"
)

// maxRecordSize is the maximum length of a single wire record. Resource
// reads carry serialized documents inline, so records can be large.
const maxRecordSize = 1024 * 1024 // 1MB

// Codec frames requests and responses over a pipe pair.
//
// Writes are flushed per record so the server observes the full record
// immediately. Codec is not safe for concurrent use; the rpc client
// serializes access.
type Codec struct {
	w       *bufio.Writer
	scanner *bufio.Scanner
}

// NewCodec wraps the server's stdin writer and stdout reader.
func NewCodec(w io.Writer, r io.Reader) *Codec {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxRecordSize)
	scanner.Buffer(buf, maxRecordSize)

	return &Codec{
		w:       bufio.NewWriter(w),
		scanner: scanner,
	}
}

// WriteRequest serializes req, appends the record delimiter, and flushes.
func (c *Codec) WriteRequest(req *Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if _, err := c.w.Write(data); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	if err := c.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write delimiter: %w", err)
	}

	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}

	return nil
}

// ReadRecord performs a blocking read of one full record and deserializes it.
//
// Blank lines are skipped. Returns io.EOF when the stream closes before a
// record arrives, and MalformedResponseError when a record does not parse as
// a response envelope.
func (c *Codec) ReadRecord() (*Response, error) {
	for c.scanner.Scan() {
		line := c.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, &errors.MalformedResponseError{
				RawData: string(line),
				Err:     err,
			}
		}

		return &resp, nil
	}

	if err := c.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}
