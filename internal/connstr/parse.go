package connstr

import "strings"

// URL is the copy-on-output form of a split connection string. The string
// fields own their memory; the Has flags distinguish an absent component
// from a present-but-empty one (relevant for user, password and port).
type URL struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     string
	Path     string

	HasScheme   bool
	HasUser     bool
	HasPassword bool
	HasPort     bool
	HasPath     bool
}

// ParseString splits s into connection string components, copying them out
// so the result is independent of s. The error is always nil today and is
// reserved for future grammar tightening.
func ParseString(s string) (*URL, error) {
	p := Split([]byte(s))
	u := &URL{
		Scheme:      string(p.Scheme),
		User:        string(p.User),
		Password:    string(p.Password),
		Host:        string(p.Host),
		Port:        string(p.Port),
		Path:        string(p.Path),
		HasScheme:   p.Scheme != nil,
		HasUser:     p.User != nil,
		HasPassword: p.Password != nil,
		HasPort:     p.Port != nil,
		HasPath:     p.Path != nil,
	}
	return u, nil
}

// Redacted reassembles the URL for display with the password replaced by
// placeholder. Components are not re-encoded: the decoded user is shown
// as-is, and an IPv6 host is re-bracketed when it contains colons.
func (u *URL) Redacted(placeholder string) string {
	var b strings.Builder
	if u.HasScheme {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	if u.HasUser {
		b.WriteString(u.User)
		if u.HasPassword {
			b.WriteByte(':')
			b.WriteString(placeholder)
		}
		b.WriteByte('@')
	}
	if strings.Contains(u.Host, ":") {
		b.WriteByte('[')
		b.WriteString(u.Host)
		b.WriteByte(']')
	} else {
		b.WriteString(u.Host)
	}
	if u.HasPort {
		b.WriteByte(':')
		b.WriteString(u.Port)
	}
	if u.HasPath {
		b.WriteByte('/')
		b.WriteString(u.Path)
	}
	return b.String()
}
