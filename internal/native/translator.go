package native

const (
	// truncateMessage tells FormatMessage to truncate rather than fail when
	// the buffer is shorter than the full message. Always passed.
	truncateMessage uint32 = 0x1

	// LanguageDefault requests the native API's own locale resolution order
	// instead of a specific locale.
	LanguageDefault uint32 = 0
)

// formatMessageFunc is the signature of the native FormatMessage entry point.
type formatMessageFunc func(code Status, flags, language uint32, buf *uint16, count *uint32) Status

// FormatMessage translates a native status code into human-readable text
// via the library's own formatting entry point. The message buffer is sized
// through the standard two-call negotiation.
func (b *Binding) FormatMessage(code Status, language uint32) (string, error) {
	p, err := Resolve[formatMessageFunc](b, "FormatMessage")
	if err != nil {
		return "", err
	}

	var buf []uint16
	n, err := Negotiate(p.Name, DefaultMessageChars, func(capacity uint32) (Status, uint32) {
		buf = make([]uint16, capacity)
		count := capacity
		st := p.Fn(code, truncateMessage, language, &buf[0], &count)
		return st, count
	})
	if err != nil {
		return "", err
	}
	if n > uint32(len(buf)) {
		n = uint32(len(buf))
	}
	return TrimWide(buf[:n]), nil
}
