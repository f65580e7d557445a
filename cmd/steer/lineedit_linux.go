//go:build linux

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// lineEditor reads input lines with basic emacs-style editing and
// in-session history when stdin is a terminal, falling back to plain reads
// otherwise.
type lineEditor struct {
	plain   plainReader
	history []string
}

func newLineEditor() *lineEditor {
	return &lineEditor{}
}

func (ed *lineEditor) ReadLine(prompt string) (string, error) {
	if !stdinIsTTY() {
		return ed.plain.readLine()
	}

	fd := int(os.Stdin.Fd())
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return "", err
	}
	raw := *saved
	// ISIG is cleared too: Ctrl+C at the prompt arrives as a byte and ends
	// the read cleanly instead of signalling the process.
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, saved)
	}()

	s := &editSession{prompt: prompt, history: ed.history}
	line, err := s.run()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		ed.history = append(ed.history, line)
	}
	return line, nil
}

// editSession holds the state of a single raw-mode line read.
type editSession struct {
	prompt string
	line   []byte
	cursor int

	history  []string
	histPos  int
	browsing bool
	draft    string
}

func (s *editSession) run() (string, error) {
	fmt.Print(s.prompt)
	s.histPos = len(s.history)

	esc := 0
	var seq strings.Builder
	var buf [16]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			if esc == 1 {
				if b == '[' {
					esc = 2
					seq.Reset()
				} else {
					esc = 0
				}
				continue
			}
			if esc == 2 {
				seq.WriteByte(b)
				if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
					s.handleSequence(seq.String())
					esc = 0
				}
				continue
			}

			switch b {
			case 0x1b: // ESC
				esc = 1
			case '\r', '\n':
				fmt.Print("\r\n")
				return string(s.line), nil
			case 3: // Ctrl+C
				fmt.Print("^C\r\n")
				return "", io.EOF
			case 4: // Ctrl+D
				if len(s.line) == 0 {
					fmt.Print("\r\n")
					return "", io.EOF
				}
			case 127, 8: // Backspace
				s.backspace()
			case 1: // Ctrl+A
				s.cursor = 0
				s.redraw()
			case 5: // Ctrl+E
				s.cursor = len(s.line)
				s.redraw()
			case 23: // Ctrl+W
				s.deleteWordBack()
			default:
				if b >= 32 {
					s.insert(b)
				}
			}
		}
	}
}

func (s *editSession) handleSequence(seq string) {
	switch seq {
	case "A": // up
		s.historyPrev()
	case "B": // down
		s.historyNext()
	case "C":
		if s.cursor < len(s.line) {
			s.cursor++
			s.redraw()
		}
	case "D":
		if s.cursor > 0 {
			s.cursor--
			s.redraw()
		}
	case "H":
		s.cursor = 0
		s.redraw()
	case "F":
		s.cursor = len(s.line)
		s.redraw()
	case "3~": // Delete
		s.deleteForward()
	case "1;5C", "5C": // Ctrl+Right
		s.wordRight()
	case "1;5D", "5D": // Ctrl+Left
		s.wordLeft()
	}
}

func (s *editSession) redraw() {
	fmt.Printf("\r%s%s\x1b[K", s.prompt, string(s.line))
	if s.cursor < len(s.line) {
		fmt.Printf("\r%s%s", s.prompt, string(s.line[:s.cursor]))
	}
}

func (s *editSession) insert(b byte) {
	if s.cursor == len(s.line) {
		s.line = append(s.line, b)
	} else {
		s.line = append(s.line, 0)
		copy(s.line[s.cursor+1:], s.line[s.cursor:])
		s.line[s.cursor] = b
	}
	s.cursor++
	s.redraw()
}

func (s *editSession) backspace() {
	if s.cursor == 0 {
		return
	}
	s.line = append(s.line[:s.cursor-1], s.line[s.cursor:]...)
	s.cursor--
	s.redraw()
}

func (s *editSession) deleteForward() {
	if s.cursor >= len(s.line) {
		return
	}
	s.line = append(s.line[:s.cursor], s.line[s.cursor+1:]...)
	s.redraw()
}

func isWordSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func (s *editSession) wordLeft() {
	if s.cursor == 0 {
		return
	}
	for s.cursor > 0 && isWordSpace(s.line[s.cursor-1]) {
		s.cursor--
	}
	for s.cursor > 0 && !isWordSpace(s.line[s.cursor-1]) {
		s.cursor--
	}
	s.redraw()
}

func (s *editSession) wordRight() {
	if s.cursor >= len(s.line) {
		return
	}
	for s.cursor < len(s.line) && isWordSpace(s.line[s.cursor]) {
		s.cursor++
	}
	for s.cursor < len(s.line) && !isWordSpace(s.line[s.cursor]) {
		s.cursor++
	}
	s.redraw()
}

func (s *editSession) deleteWordBack() {
	if s.cursor == 0 {
		return
	}
	start := s.cursor
	for start > 0 && isWordSpace(s.line[start-1]) {
		start--
	}
	for start > 0 && !isWordSpace(s.line[start-1]) {
		start--
	}
	s.line = append(s.line[:start], s.line[s.cursor:]...)
	s.cursor = start
	s.redraw()
}

func (s *editSession) historyPrev() {
	if len(s.history) == 0 {
		return
	}
	if !s.browsing {
		s.draft = string(s.line)
		s.browsing = true
		s.histPos = len(s.history)
	}
	if s.histPos > 0 {
		s.histPos--
		s.setLine(s.history[s.histPos])
	}
}

func (s *editSession) historyNext() {
	if !s.browsing {
		return
	}
	if s.histPos < len(s.history)-1 {
		s.histPos++
		s.setLine(s.history[s.histPos])
	} else {
		s.histPos = len(s.history)
		s.browsing = false
		s.setLine(s.draft)
	}
}

func (s *editSession) setLine(text string) {
	s.line = append(s.line[:0], text...)
	s.cursor = len(s.line)
	s.redraw()
}
