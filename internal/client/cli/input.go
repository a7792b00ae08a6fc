package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// lineReader is the input surface of the REPL. *readline.Instance
// implements it; scriptReader serves pipes and tests.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Test seams for terminal detection and readline construction.
var (
	isTerminal  = term.IsTerminal
	newReadline = func(prompt string) (lineReader, io.Closer, error) {
		rl, err := readline.New(prompt)
		if err != nil {
			return nil, nil, err
		}
		return rl, rl, nil
	}
)

// newLineReader uses readline on an interactive terminal and a plain line
// scanner otherwise.
func newLineReader(in *os.File, out io.Writer) (lineReader, io.Closer, error) {
	if isTerminal(int(in.Fd())) {
		return newReadline("> ")
	}
	return newScriptReader(in, out), io.NopCloser(in), nil
}

// scriptReader reads lines from any io.Reader and echoes the prompt to out.
type scriptReader struct {
	sc     *bufio.Scanner
	out    io.Writer
	prompt string
}

func newScriptReader(in io.Reader, out io.Writer) *scriptReader {
	return &scriptReader{sc: bufio.NewScanner(in), out: out}
}

func (r *scriptReader) SetPrompt(prompt string) { r.prompt = prompt }

func (r *scriptReader) Readline() (string, error) {
	if r.prompt != "" {
		fmt.Fprint(r.out, r.prompt)
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// GetSimpleText shows prompt and reads one trimmed line.
func GetSimpleText(r lineReader, prompt string) (string, error) {
	r.SetPrompt(prompt + ": ")
	line, err := r.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(r lineReader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintln(w, prompt+" (press Enter on an empty line to finish)")
	lines, err := readUntilBlank(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetFields prompts for "name=value" lines, one per line, ending on an empty
// line. The raw lines are returned unchanged; parsing is left to the caller.
func GetFields(r lineReader, w io.Writer, names []string) ([]string, error) {
	fmt.Fprintf(w, "Enter changes as name=value (%s), empty line to finish\n", strings.Join(names, ", "))
	return readUntilBlank(r)
}

// Confirm asks a question and reports whether the answer equals want,
// case-insensitively. EOF counts as "no".
func Confirm(r lineReader, question, want string) (bool, error) {
	answer, err := GetSimpleText(r, question)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, want), nil
}

func readUntilBlank(r lineReader) ([]string, error) {
	r.SetPrompt("  ")
	var lines []string
	for {
		line, err := r.Readline()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines, nil
}
