// Package quoting renders arbitrary bytes as printable ASCII for safe
// display. Printable bytes pass through verbatim; everything else becomes a
// \xHH escape with two lowercase hex digits. The encoding is one-way: it is
// meant for diagnostics and logs, not for round-tripping payloads.
package quoting

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-conn-diag/internal/strbuf"
)

// ErrOverflow is returned by QuoteData when the destination has no room for
// the next complete unit (one verbatim byte or one whole escape sequence).
// The growable path treats it as a signal to grow and retry; fixed-buffer
// callers get valid truncated output.
var ErrOverflow = errors.New("quoting destination overflow")

const (
	// escapeLen is the width of one \xHH escape sequence.
	escapeLen = 4

	// minGrowCapacity is the smallest capacity the growth loop requests.
	minGrowCapacity = 16

	// printBufSize bounds the best-effort output of Fprint.
	printBufSize = 256
)

const hexDigits = "0123456789abcdef"

// printable reports whether c renders safely as itself. The check is
// locale-independent: the printable ASCII range only.
func printable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

// QuoteData quotes src into dst and returns the number of bytes written.
//
// The final byte of dst is reserved (the terminator slot) and never written:
// a verbatim byte is appended only while idx < len(dst)-1, an escape only
// while idx < len(dst)-4. When the next unit does not fit, QuoteData drops
// the last byte already written so the output ends on a clean boundary, and
// returns the truncated count together with ErrOverflow. The truncated
// prefix dst[:count] is always valid printable text.
func QuoteData(dst, src []byte) (int, error) {
	idx := 0
	capacity := len(dst)
	for _, c := range src {
		if printable(c) {
			if idx >= capacity-1 {
				return truncate(idx), ErrOverflow
			}
			dst[idx] = c
			idx++
			continue
		}
		if idx >= capacity-escapeLen {
			return truncate(idx), ErrOverflow
		}
		dst[idx] = '\\'
		dst[idx+1] = 'x'
		dst[idx+2] = hexDigits[c>>4]
		dst[idx+3] = hexDigits[c&0x0f]
		idx += escapeLen
	}
	return idx, nil
}

// truncate backs off one byte so a partially written unit never leaks into
// the reported output.
func truncate(idx int) int {
	if idx > 0 {
		return idx - 1
	}
	return 0
}

// Quote appends the quoted form of src to dst, growing dst as needed.
//
// Each attempt quotes the full input from scratch into the spare region, so
// retries after growth are idempotent. On overflow the capacity doubles
// (minimum 16 bytes); required capacity is bounded by 4*len(src)+1, so the
// loop terminates either by success or by dst refusing to grow further.
// A growth failure is returned as-is and is not retried.
func Quote(dst *strbuf.Buffer, src []byte) error {
	for {
		size := dst.Len()
		n, err := QuoteData(dst.Tail(), src)
		if err == nil {
			return dst.Resize(size + n)
		}
		if !errors.Is(err, ErrOverflow) {
			return err
		}
		next := 2 * dst.Cap()
		if next == 0 {
			next = minGrowCapacity
		}
		if err := dst.Grow(next); err != nil {
			return err
		}
	}
}

// QuoteString quotes src into a fresh buffer and returns it as a string.
func QuoteString(src []byte) (string, error) {
	var buf strbuf.Buffer
	if err := Quote(&buf, src); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fprint writes a best-effort quoted rendering of data to w through a fixed
// 256-byte buffer. Output that does not fit is truncated and marked with a
// literal "... (truncated)" suffix rather than grown; this keeps the helper
// safe to call from failure paths where allocation is unwelcome. Failures
// other than overflow go to the error channel, never to w.
func Fprint(w io.Writer, data []byte) {
	var buf [printBufSize]byte
	n, err := QuoteData(buf[:], data)
	switch {
	case err == nil:
		w.Write(buf[:n]) //nolint:errcheck // best-effort diagnostic output
	case errors.Is(err, ErrOverflow):
		w.Write(buf[:n])                     //nolint:errcheck // best-effort diagnostic output
		io.WriteString(w, "... (truncated)") //nolint:errcheck // best-effort diagnostic output
	default:
		slog.Error("quoting failed", "error", err, "input_bytes", len(data))
	}
}

// Print writes a best-effort quoted rendering of data to stdout.
func Print(data []byte) {
	Fprint(os.Stdout, data)
}

// Attr renders value for use as a slog attribute, falling back to a length
// marker if quoting fails.
func Attr(key string, value []byte) slog.Attr {
	quoted, err := QuoteString(value)
	if err != nil {
		quoted = fmt.Sprintf("<%d bytes unquotable: %v>", len(value), err)
	}
	return slog.String(key, quoted)
}
