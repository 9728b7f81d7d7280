package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter implements domain.Prompter over a line-oriented reader.
// Only the answer "y" confirms; anything else declines.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm writes question and reads one line. A final line without a
// newline still counts; end of input with nothing read is an error.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return false, err
		}
	}
	return strings.TrimSpace(line) == "y", nil
}
