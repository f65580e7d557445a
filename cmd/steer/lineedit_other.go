//go:build !linux

package main

import "fmt"

// lineEditor reads newline-delimited input. Terminal editing is only
// available on Linux.
type lineEditor struct {
	plain plainReader
}

func newLineEditor() *lineEditor {
	return &lineEditor{}
}

func (ed *lineEditor) ReadLine(prompt string) (string, error) {
	if stdinIsTTY() {
		fmt.Print(prompt)
	}
	return ed.plain.readLine()
}
