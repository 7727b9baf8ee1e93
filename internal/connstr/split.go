// Package connstr splits connection-string-shaped URLs into their
// components without copying.
//
// The accepted grammar is deliberately narrower than RFC 3986:
//
//	[ scheme "://" ] [ user [ ":" password ] "@" ] host [ ":" port ] [ "/" path ]
//
// scheme, user, password and port cannot contain '@', ':' or '/'. host has
// the same restriction unless it is bracketed as "[ipv6-literal]", in which
// case it may contain ':'. path may contain anything.
package connstr

import "bytes"

var schemeDelim = []byte("://")

// Parts holds the components of a split connection string. Every non-nil
// field is a sub-slice of the buffer passed to Split; a nil field means the
// component is absent. Host is never nil (it may be empty).
type Parts struct {
	Scheme   []byte
	User     []byte
	Password []byte
	Host     []byte
	Port     []byte
	Path     []byte
}

// Split tokenizes buf into connection string components in place.
//
// All returned fields alias buf: they stay valid exactly as long as the
// caller keeps buf alive and unmodified, and percent-decoding of user and
// password rewrites the aliased bytes of buf itself. Callers that need
// owned strings should use ParseString instead. A nil buf yields the zero
// Parts; an empty non-nil buf yields an empty non-nil Host.
func Split(buf []byte) (p Parts) {
	if buf == nil {
		return p
	}

	rest := buf
	slash := bytes.IndexByte(rest, '/')

	// A first slash with at least one byte before it may belong to a "://"
	// scheme delimiter; look back one byte for it. A match further right
	// would sit past the slash and is ignored.
	if slash > 0 {
		if end := bytes.Index(rest[slash-1:], schemeDelim); end >= 0 && slash-1+end < slash {
			schemeEnd := slash - 1 + end
			p.Scheme = rest[:schemeEnd]
			rest = rest[schemeEnd+len(schemeDelim):]
			slash = bytes.IndexByte(rest, '/')
		}
	}

	// Everything after the first remaining slash is the path, verbatim: no
	// further delimiter handling applies inside it.
	if slash >= 0 {
		p.Path = rest[slash+1:]
		rest = rest[:slash]
	}

	if at := bytes.IndexByte(rest, '@'); at >= 0 {
		creds := rest[:at]
		rest = rest[at+1:]
		p.User = creds
		if colon := bytes.IndexByte(creds, ':'); colon >= 0 {
			p.User = creds[:colon]
			p.Password = creds[colon+1:]
		}
	}

	// Host is always assigned, even when empty. A leading '[' opens an IPv6
	// literal that may contain colons; the bracket contents become the host
	// and the port search continues after ']'. An unterminated '[' falls
	// through to the plain host:port handling.
	p.Host = rest
	bracketed := false
	if len(rest) > 0 && rest[0] == '[' {
		if close := bytes.IndexByte(rest, ']'); close >= 0 {
			p.Host = rest[1:close]
			rest = rest[close+1:]
			bracketed = true
		}
	}

	if colon := bytes.IndexByte(rest, ':'); colon >= 0 {
		if !bracketed {
			p.Host = rest[:colon]
		}
		p.Port = rest[colon+1:]
	}

	// Only credentials are percent-decoded; scheme, host, port and path are
	// returned as-is.
	if p.User != nil {
		p.User = decodePercentInPlace(p.User)
	}
	if p.Password != nil {
		p.Password = decodePercentInPlace(p.Password)
	}
	return p
}

// decodePercentInPlace rewrites b, replacing each '%' followed by two more
// bytes with the byte value of the two-character hex sequence. Decoding
// never fails: the hex value is taken from the longest valid leading prefix
// of the two bytes, so "%4z" decodes to 0x04 and "%zz" to 0x00. A '%' with
// fewer than two bytes after it passes through verbatim. Output never
// exceeds input, which makes the front-to-back in-place rewrite safe.
func decodePercentInPlace(b []byte) []byte {
	out := 0
	for in := 0; in < len(b); {
		if b[in] == '%' && in+2 < len(b) {
			b[out] = hexPrefixValue(b[in+1], b[in+2])
			in += 3
			out++
			continue
		}
		b[out] = b[in]
		in++
		out++
	}
	return b[:out]
}

// hexPrefixValue parses the two-byte escape body the way strtoul does:
// digits accumulate until the first non-hex byte, and no digits at all
// yield zero.
func hexPrefixValue(hi, lo byte) byte {
	d, ok := hexDigit(hi)
	if !ok {
		return 0
	}
	v := d
	if d, ok = hexDigit(lo); ok {
		v = v<<4 | d
	}
	return v
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
