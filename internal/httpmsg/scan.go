package httpmsg

import "bytes"

// indexCRLF returns the index of the first "\r\n" in buf at or after
// from, or -1 if none is present yet. Callers treat -1 as ErrNeedMoreData
// — the boundary may simply not have arrived yet, which is the core of
// the chunking-invariance guarantee: scanning never assumes a boundary
// exists, it only reports one when found.
func indexCRLF(buf []byte, from int) int {
	if from >= len(buf) {
		return -1
	}
	rel := bytes.Index(buf[from:], crlf)
	if rel < 0 {
		return -1
	}
	return from + rel
}

var crlf = []byte("\r\n")

// indexByte returns the index of c in buf at or after from, or -1.
func indexByte(buf []byte, from int, c byte) int {
	if from >= len(buf) {
		return -1
	}
	rel := bytes.IndexByte(buf[from:], c)
	if rel < 0 {
		return -1
	}
	return from + rel
}

// trimOWS strips leading/trailing optional whitespace (space, tab) as
// defined by RFC 7230 §3.2.3.
func trimOWS(s string) string {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
