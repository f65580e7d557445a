package main

import (
	"bufio"
	"io"
	"os"
)

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}

// plainReader reads newline-delimited input without terminal editing. The
// buffered reader is kept across calls so piped input is not dropped
// between lines.
type plainReader struct {
	src io.Reader
	r   *bufio.Reader
}

func (p *plainReader) readLine() (string, error) {
	if p.r == nil {
		if p.src == nil {
			p.src = os.Stdin
		}
		p.r = bufio.NewReader(p.src)
	}
	s, err := p.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		if s == "" {
			return "", io.EOF
		}
	}
	return trimTrailingNewline(s), nil
}

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}
