package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/state"
)

const lineWidth = 78

// LinePresenter plays the game over plain line-based I/O.
type LinePresenter struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ state.Presenter = (*LinePresenter)(nil)

func NewLinePresenter(in io.Reader, out io.Writer) *LinePresenter {
	return &LinePresenter{in: bufio.NewScanner(in), out: out}
}

func (p *LinePresenter) Render(events []event.Event) {
	for _, e := range events {
		text := wordwrap.String(e.Text, lineWidth)
		switch e.Kind {
		case event.KindRejected:
			text = "! " + text
		case event.KindSystem:
			text = "== " + text + " =="
		}
		fmt.Fprintln(p.out, text)
	}
	fmt.Fprintln(p.out)
}

func (p *LinePresenter) PlayIntro(events []event.Event) {
	fmt.Fprintln(p.out, strings.Repeat("=", lineWidth))
	p.Render(events)
	fmt.Fprintln(p.out, strings.Repeat("=", lineWidth))
}

func (p *LinePresenter) PlayEnding(status state.Status, events []event.Event) {
	fmt.Fprintln(p.out, strings.Repeat("~", lineWidth))
	p.Render(events)
}

func (p *LinePresenter) PromptForCommand() (string, error) {
	fmt.Fprint(p.out, "> ")
	return p.readLine()
}

// PromptForChoice accepts either an option's number or its text.
func (p *LinePresenter) PromptForChoice(prompt string, options []string) (string, error) {
	fmt.Fprintln(p.out, prompt)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o)
	}
	fmt.Fprint(p.out, "? ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return pickOption(line, options), nil
}

func (p *LinePresenter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// pickOption resolves a typed answer against options: a 1-based number, an exact
// (case-insensitive) option, or a "y"/"n" shorthand. Anything else is "".
func pickOption(answer string, options []string) string {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o
		}
	}
	if len(answer) == 1 {
		for _, o := range options {
			if o != "" && strings.EqualFold(o[:1], answer) {
				return o
			}
		}
	}
	return ""
}
