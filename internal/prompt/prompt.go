// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/logging"
)

// Sentinel errors for prompt interactions.
var (
	ErrNoChoices        = errors.New("no choices to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("prompt cancelled")
)

// Validator checks a raw answer. A non-nil return is shown to the user
// and the prompt repeats until the answer passes.
type Validator func(string) error

// Prompter asks questions on a reader/writer pair. The zero IO pair is
// stdin/stdout; tests inject buffers.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	br    *bufio.Reader
	fuzzy bool

	labelColor *color.Color
	errColor   *color.Color
	hintColor  *color.Color
}

// New creates a Prompter on stdin/stdout. Fuzzy selection is enabled
// when stdout is a color-capable terminal.
func New() *Prompter {
	p := NewWithIO(os.Stdin, os.Stdout)
	p.fuzzy = logging.IsTTY(os.Stdout)
	return p
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	p := &Prompter{
		in:  r,
		out: w,
		br:  bufio.NewReader(r),
	}
	if logging.SupportsColor(w) {
		p.labelColor = color.New(color.FgCyan, color.Bold)
		p.errColor = color.New(color.FgRed)
		p.hintColor = color.New(color.FgHiBlack)
	}
	return p
}

func (p *Prompter) label(s string) string {
	if p.labelColor != nil {
		return p.labelColor.Sprint(s)
	}
	return s
}

func (p *Prompter) hint(s string) string {
	if p.hintColor != nil {
		return p.hintColor.Sprint(s)
	}
	return s
}

func (p *Prompter) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.errColor != nil {
		msg = p.errColor.Sprint(msg)
	}
	fmt.Fprintln(p.out, msg)
}

// readLine reads one trimmed line. EOF maps to ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrCancelled
			}
			// Last line without trailing newline is still an answer.
			return strings.TrimSpace(line), nil
		}
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}

// Input asks for a free-form answer with a default. An empty answer
// yields the default. Validation failures are surfaced inline and the
// prompt repeats until the answer passes.
func (p *Prompter) Input(question, def string, validate Validator) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s %s ", p.label(question), p.hint("["+def+"]"))
		} else {
			fmt.Fprintf(p.out, "%s ", p.label(question))
		}

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}

		if validate != nil {
			if verr := validate(answer); verr != nil {
				p.errorf(">> %s", verr)
				continue
			}
		}
		return answer, nil
	}
}

// Confirm asks a yes/no question. An empty answer yields the default.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", p.label(question), p.hint(suffix))

		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			p.errorf(">> please answer y or n")
		}
	}
}

// Choice is a selectable item with a machine value and a display name.
type Choice struct {
	Value string
	Name  string
}

// Select asks the user to pick exactly one choice and returns its Value.
// A single choice is auto-selected without prompting. On a terminal the
// pick uses fuzzy finding; otherwise a numbered list.
func (p *Prompter) Select(question string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	if len(choices) == 1 {
		return choices[0].Value, nil
	}

	if p.fuzzy {
		idx, err := fuzzyfinder.Find(choices, func(i int) string {
			return choices[i].Name
		})
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return "", ErrCancelled
			}
			return "", errors.Wrap(err, "fuzzy selection")
		}
		return choices[idx].Value, nil
	}

	fmt.Fprintf(p.out, "%s\n", p.label(question))
	for i, c := range choices {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, c.Name)
	}
	fmt.Fprintf(p.out, "Select %s ", p.hint("[1]"))

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return choices[0].Value, nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number", answer)
	}
	if n < 1 || n > len(choices) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(choices))
	}
	return choices[n-1].Value, nil
}

// MultiSelect asks the user to pick any number of choices by entering
// comma-separated numbers. An empty answer selects nothing. The result
// is the set of selected Values.
func (p *Prompter) MultiSelect(question string, choices []Choice) ([]string, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}

	fmt.Fprintf(p.out, "%s\n", p.label(question))
	for i, c := range choices {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, c.Name)
	}

	for {
		fmt.Fprintf(p.out, "Select %s ", p.hint("(comma-separated, empty for none)"))

		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}

		var selected []string
		seen := make(map[int]bool)
		valid := true
		for _, part := range strings.Split(answer, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > len(choices) {
				p.errorf(">> %q is not a valid choice", part)
				valid = false
				break
			}
			if !seen[n] {
				seen[n] = true
				selected = append(selected, choices[n-1].Value)
			}
		}
		if valid {
			return selected, nil
		}
	}
}
