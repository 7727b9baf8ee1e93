package quoting

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-conn-diag/internal/strbuf"
)

func TestQuoteDataPrintableIdentity(t *testing.T) {
	src := []byte("connection refused: amqp://host:5672/queue")
	dst := make([]byte, len(src)+1)

	n, err := QuoteData(dst, src)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(dst[:n]))
}

func TestQuoteDataEveryPrintableByteIsIdentity(t *testing.T) {
	for c := byte(0x20); c < 0x7f; c++ {
		dst := make([]byte, 2)
		n, err := QuoteData(dst, []byte{c})
		require.NoError(t, err)
		assert.Equal(t, string([]byte{c}), string(dst[:n]))
	}
}

func TestQuoteDataEscapesNonPrintable(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want string
	}{
		{"nul byte", []byte{0x00}, `\x00`},
		{"high byte", []byte{0xff}, `\xff`},
		{"newline", []byte{'\n'}, `\x0a`},
		{"delete", []byte{0x7f}, `\x7f`},
		{"mixed payload", []byte{'o', 'k', 0x01, '!'}, `ok\x01!`},
		{"lowercase hex digits", []byte{0xab, 0xcd}, `\xab\xcd`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 64)
			n, err := QuoteData(dst, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(dst[:n]))
		})
	}
}

func TestQuoteDataOverflow(t *testing.T) {
	tests := []struct {
		name    string
		dstSize int
		src     []byte
		want    string
	}{
		// One printable byte needs 2 bytes of capacity (terminator slot).
		{"no room at all", 0, []byte("a"), ""},
		{"room only for terminator", 1, []byte("a"), ""},
		// Truncation drops the last complete byte already written.
		{"printable truncation", 4, []byte("abcdef"), "ab"},
		// An escape needs 5 bytes of spare capacity; 4 is not enough.
		{"escape does not fit", 4, []byte{0x00}, ""},
		{"escape after printable", 5, []byte{'a', 0x00}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dstSize)
			n, err := QuoteData(dst, tt.src)
			require.ErrorIs(t, err, ErrOverflow)
			assert.Equal(t, tt.want, string(dst[:n]))
		})
	}
}

func TestQuoteDataEmptySource(t *testing.T) {
	n, err := QuoteData(make([]byte, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQuoteGrowsUntilInputFits(t *testing.T) {
	// All non-printable: worst case of 4 output bytes per input byte.
	src := bytes.Repeat([]byte{0x00}, 100)

	var buf strbuf.Buffer
	require.NoError(t, Quote(&buf, src))

	assert.Equal(t, strings.Repeat(`\x00`, 100), buf.String())
	assert.LessOrEqual(t, buf.Len(), 4*len(src))
}

func TestQuoteAppends(t *testing.T) {
	var buf strbuf.Buffer
	require.NoError(t, Quote(&buf, []byte("head")))
	require.NoError(t, Quote(&buf, []byte{0x00}))
	assert.Equal(t, `head\x00`, buf.String())
}

func TestQuoteAllByteValues(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}

	var buf strbuf.Buffer
	require.NoError(t, Quote(&buf, src))

	out := buf.String()
	assert.LessOrEqual(t, len(out), 4*len(src))
	// Spot-check boundaries of the printable range.
	assert.Contains(t, out, `\x1f !`)
	assert.Contains(t, out, `~\x7f`)
}

func TestQuoteRetryIsIdempotent(t *testing.T) {
	// Start with a deliberately tiny capacity so the loop grows repeatedly;
	// earlier truncated attempts must not leak into the committed output.
	buf := strbuf.New(2)
	src := []byte("abc\x01def\x02ghi")
	require.NoError(t, Quote(buf, src))
	assert.Equal(t, `abc\x01def\x02ghi`, buf.String())
}

func TestQuotePropagatesGrowthFailure(t *testing.T) {
	buf := strbuf.NewWithLimit(0, 8)
	err := Quote(buf, bytes.Repeat([]byte("x"), 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, strbuf.ErrCapacityLimit)
	assert.Equal(t, 0, buf.Len())
}

func TestQuoteString(t *testing.T) {
	s, err := QuoteString([]byte{'h', 'i', 0x00})
	require.NoError(t, err)
	assert.Equal(t, `hi\x00`, s)
}

func TestFprintSmallPayload(t *testing.T) {
	var out bytes.Buffer
	Fprint(&out, []byte{'a', 0x07, 'b'})
	assert.Equal(t, `a\x07b`, out.String())
}

func TestFprintTruncatesLargePayload(t *testing.T) {
	var out bytes.Buffer
	Fprint(&out, bytes.Repeat([]byte("x"), 1000))

	got := out.String()
	assert.True(t, strings.HasSuffix(got, "... (truncated)"), "missing truncation marker: %q", got)
	// 256-byte buffer holds 254 bytes after the terminator slot and the
	// dropped trailing byte.
	assert.Equal(t, strings.Repeat("x", 254)+"... (truncated)", got)
}

func TestAttrQuotesValue(t *testing.T) {
	attr := Attr("payload", []byte{0x01, 'a'})
	assert.Equal(t, "payload", attr.Key)
	assert.Equal(t, `\x01a`, attr.Value.String())
}

func ExampleFprint() {
	var out bytes.Buffer
	Fprint(&out, []byte("ping\x00\x01"))
	fmt.Println(out.String())
	// Output: ping\x00\x01
}
