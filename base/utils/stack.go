package utils

import (
	"bytes"
	"runtime"
)

// Stack returns the goroutine stack, dropping the first skip frames
func Stack(skip int) []byte {
	buf := make([]byte, 8192)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, len(buf)*2)
	}

	// header line, then two lines per frame
	lines := bytes.Split(buf, []byte("\n"))
	if len(lines) < 1+2*skip {
		return buf
	}
	out := append([][]byte{lines[0]}, lines[1+2*skip:]...)
	return bytes.Join(out, []byte("\n"))
}
