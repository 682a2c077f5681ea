// Package shell is the interactive console around the protocol engine: the
// main menu, the FAQ browser and the question/goal/depth session loop.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gzhole/dlprotocol/internal/config"
)

const clearScreen = "\033[H\033[2J"

// Protocol is the part of the engine the shell drives.
type Protocol interface {
	GetCurrentState() string
	ExecuteProtocol(initialInput, goal string, depth int) string
}

// Shell reads answers line by line from in and writes screens to out.
type Shell struct {
	in        *bufio.Reader
	out       io.Writer
	defaults  config.Defaults
	newEngine func() Protocol
	clear     bool
	st        styles
}

// Option configures a Shell.
type Option func(*Shell)

// WithClearScreen clears the terminal before each screen.
func WithClearScreen(on bool) Option {
	return func(s *Shell) { s.clear = on }
}

// WithDefaults overrides the values used for empty answers.
func WithDefaults(d config.Defaults) Option {
	return func(s *Shell) { s.defaults = d }
}

// New builds a shell. newEngine is called once per protocol session so each
// session owns its own state.
func New(in io.Reader, out io.Writer, newEngine func() Protocol, opts ...Option) *Shell {
	s := &Shell{
		in:        bufio.NewReader(in),
		out:       out,
		newEngine: newEngine,
		defaults: config.Defaults{
			Input: config.DefaultInput,
			Goal:  config.DefaultGoal,
			Depth: config.DefaultDepth,
		},
		st: newStyles(out),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run shows the main menu until the user exits or input ends.
func (s *Shell) Run() error {
	for {
		s.screen("Deep Learning Protocol - Interactive Menu")
		s.println("1. Run Interactive Protocol")
		s.println("2. View FAQ")
		s.println("3. Exit")
		s.println("")

		choice, err := s.ask("Choose an option (1-3): ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			if err := s.RunProtocol(); err != nil {
				return err
			}
		case "2":
			if err := s.ShowFAQ(); err != nil {
				return err
			}
		case "3":
			s.println("\nThank you for using Deep Learning Protocol!")
			return nil
		default:
			if err := s.pause("\nInvalid choice. Press Enter to continue..."); err != nil {
				return endOfInput(err)
			}
		}
	}
}

// ShowFAQ lists the questions and shows answers until the user goes back.
func (s *Shell) ShowFAQ() error {
	back := len(faqs) + 1
	for {
		s.screen("FAQ - Frequently Asked Questions")
		for i, f := range faqs {
			s.printf("%d. %s\n", i+1, f.Question)
		}
		s.printf("%d. Back to Main Menu\n\n", back)

		raw, err := s.ask(fmt.Sprintf("Choose a question (1-%d): ", back))
		if err != nil {
			return endOfInput(err)
		}

		n, convErr := strconv.Atoi(raw)
		msg := ""
		switch {
		case convErr != nil:
			msg = "\nInvalid input. Press Enter to continue..."
		case n == back:
			return nil
		default:
			entry, ok := LookupFAQ(n)
			if !ok {
				msg = "\nInvalid selection. Press Enter to continue..."
				break
			}
			s.screen("Q: " + entry.Question)
			s.printf("A: %s\n\n", entry.Answer)
			msg = "Press Enter to continue..."
		}

		if err := s.pause(msg); err != nil {
			return endOfInput(err)
		}
	}
}

// RunProtocol runs question/goal/depth rounds against one engine until the
// user declines to continue.
func (s *Shell) RunProtocol() error {
	engine := s.newEngine()

	for {
		s.screen("Deep Learning Protocol - Execution")
		s.printf("%s %s\n\n", s.st.label.Render("Current State:"), engine.GetCurrentState())

		input, err := s.askDefault(
			fmt.Sprintf("Enter your question or input (or press Enter for default '%s'): ", s.defaults.Input),
			s.defaults.Input)
		if err != nil {
			return endOfInput(err)
		}

		goal, err := s.askDefault(
			fmt.Sprintf("Enter your goal (or press Enter for default '%s'): ", s.defaults.Goal),
			s.defaults.Goal)
		if err != nil {
			return endOfInput(err)
		}

		rawDepth, err := s.ask(fmt.Sprintf("Enter processing depth (%d-%d, or press Enter for default %d): ",
			config.MinDepth, config.MaxDepth, s.defaults.Depth))
		if err != nil {
			return endOfInput(err)
		}
		depth, outOfRange := ParseDepth(rawDepth, s.defaults.Depth)
		if outOfRange {
			s.println(s.st.warn.Render(fmt.Sprintf("Depth out of range. Using default depth of %d.", s.defaults.Depth)))
		}

		s.println("")
		s.println(s.st.dim.Render(fmt.Sprintf("--- Processing: Input='%s', Goal='%s', Depth=%d ---", input, goal, depth)))
		s.println("")

		result := engine.ExecuteProtocol(input, goal, depth)

		s.println("\n--- Protocol Result ---")
		s.println(result)
		s.printf("\n%s %s\n", s.st.label.Render("Final State:"), engine.GetCurrentState())

		s.println("\n--- Continue? (y/n) ---")
		again, err := s.ask("")
		if err != nil {
			return endOfInput(err)
		}
		if !strings.EqualFold(again, "y") {
			return nil
		}
	}
}

// ParseDepth turns a depth answer into a value in [MinDepth, MaxDepth].
// Blank or non-numeric answers quietly use fallback; numeric answers outside
// the range use fallback and report outOfRange.
func ParseDepth(raw string, fallback int) (depth int, outOfRange bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, false
	}
	if n < config.MinDepth || n > config.MaxDepth {
		return fallback, true
	}
	return n, false
}

func (s *Shell) screen(title string) {
	if s.clear {
		fmt.Fprint(s.out, clearScreen)
	}
	fmt.Fprintln(s.out, s.st.banner.Render(title))
	fmt.Fprintln(s.out)
}

// readLine returns the next line without its line terminator.
func (s *Shell) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) ask(prompt string) (string, error) {
	line, err := s.readLine(prompt)
	return strings.TrimSpace(line), err
}

// askDefault returns the answer verbatim, or fallback if it is blank.
func (s *Shell) askDefault(prompt, fallback string) (string, error) {
	answer, err := s.readLine(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return fallback, nil
	}
	return answer, nil
}

func (s *Shell) pause(msg string) error {
	s.println(msg)
	_, err := s.ask("")
	return err
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// endOfInput treats a closed input stream as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("reading input: %w", err)
}
