package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// lineIO answers confirm and prompt questions from a line-based terminal.
type lineIO struct {
	r *bufio.Reader
	w io.Writer
}

func newLineIO(r io.Reader, w io.Writer) *lineIO {
	if r == nil {
		r = strings.NewReader("")
	}
	return &lineIO{r: bufio.NewReader(r), w: w}
}

// readLine returns the next line without its newline; ok is false at EOF with nothing read.
func (l *lineIO) readLine() (string, bool) {
	line, err := l.r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Confirm implements app.Confirmer. Only an explicit yes counts.
func (l *lineIO) Confirm(message string) bool {
	fmt.Fprintf(l.w, "%s [y/N] ", message)
	line, ok := l.readLine()
	if !ok {
		fmt.Fprintln(l.w)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

// PromptText implements app.Prompter. An empty line keeps current; EOF cancels.
func (l *lineIO) PromptText(message, current string) (*string, error) {
	fmt.Fprintf(l.w, "%s [%s]: ", message, current)
	line, ok := l.readLine()
	if !ok {
		fmt.Fprintln(l.w)
		return nil, nil
	}
	if line == "" {
		return &current, nil
	}
	return &line, nil
}
