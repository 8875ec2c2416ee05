package secret

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads secrets from the controlling terminal with echo disabled.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	reader *bufio.Reader
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

func (p *TerminalPrompter) PromptSecret(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	defer fmt.Fprintln(p.Out)

	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		// piped input, e.g. scripted runs
		line, err := p.lines().ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *TerminalPrompter) PromptLine(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	line, err := p.lines().ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// lines shares one buffered reader so consecutive prompts on piped input see every line.
func (p *TerminalPrompter) lines() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return p.reader
}
