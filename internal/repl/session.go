package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/trainreg/internal/logging"
	"github.com/nibzard/trainreg/internal/trains"
	"github.com/nibzard/trainreg/internal/ui"
)

// Prompts used by the add command.
const (
	PromptDestination   = "Destination: "
	PromptTrainNumber   = "Train number: "
	PromptDepartureTime = "Departure time (HH:MM): "
)

// errExit stops the read loop.
var errExit = errors.New("exit")

// Option configures a Session.
type Option func(*Session)

// WithPrompt sets the command prompt.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithKeepOnMissing keeps the current records when load names a missing file.
// By default the registry is reset to empty.
func WithKeepOnMissing(enabled bool) Option {
	return func(s *Session) {
		s.keepOnMissing = enabled
	}
}

// WithPreserveArgCase lower-cases only the command word.
func WithPreserveArgCase(enabled bool) Option {
	return func(s *Session) {
		s.parser = NewParser(enabled)
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithJournal records every command to journal.
func WithJournal(journal *logging.Journal) Option {
	return func(s *Session) {
		s.journal = journal
	}
}

type handlerFunc func(cmd Command) error

// Session is one interactive shell over a registry.
type Session struct {
	registry      *trains.Registry
	store         *trains.Store
	parser        *Parser
	in            *bufio.Reader
	out           io.Writer
	logger        *log.Logger
	journal       *logging.Journal
	prompt        string
	keepOnMissing bool
	handlers      map[Kind]handlerFunc
}

// NewSession creates a session reading commands from in and writing results
// to out. The registry starts empty.
func NewSession(store *trains.Store, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		registry: trains.NewRegistry(),
		store:    store,
		parser:   NewParser(false),
		in:       bufio.NewReader(in),
		out:      out,
		logger:   log.New(io.Discard),
		prompt:   ">>> ",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[Kind]handlerFunc{
		KindAdd:    s.handleAdd,
		KindList:   s.handleList,
		KindSelect: s.handleSelect,
		KindSave:   s.handleSave,
		KindLoad:   s.handleLoad,
		KindHelp:   s.handleHelp,
		KindExit:   s.handleExit,
	}
	return s
}

// Registry returns the registry owned by the session.
func (s *Session) Registry() *trains.Registry {
	return s.registry
}

// Run reads and executes commands until exit, end of input, or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, s.prompt)
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		if s.Execute(line) {
			return nil
		}
	}
}

// Execute runs a single input line. It returns true when the line asks the
// session to end.
func (s *Session) Execute(line string) bool {
	cmd, err := s.parser.Parse(line)
	if err != nil {
		fmt.Fprintln(s.out, userMessage(err))
		s.record(cmd, err)
		return false
	}
	if cmd.Kind == KindNone {
		return false
	}

	err = s.handlers[cmd.Kind](cmd)
	s.record(cmd, err)
	if errors.Is(err, errExit) {
		return true
	}
	if err != nil {
		s.report(cmd, err)
	}
	return false
}

// Load replaces the registry with the contents of path.
// A missing file empties the registry unless keep-on-missing is set; any
// other failure leaves the registry untouched.
func (s *Session) Load(path string) (int, error) {
	records, err := s.store.Load(path)
	if err != nil {
		if errors.Is(err, trains.ErrNotFound) && !s.keepOnMissing {
			s.registry.Replace(records)
		}
		return 0, err
	}
	s.registry.Replace(records)
	return len(records), nil
}

func (s *Session) handleAdd(Command) error {
	var fields [3]string
	for i, prompt := range []string{PromptDestination, PromptTrainNumber, PromptDepartureTime} {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return fmt.Errorf("add cancelled: %w", io.ErrUnexpectedEOF)
			}
			return fmt.Errorf("read input: %w", err)
		}
		fields[i] = line
	}

	rec := s.registry.Add(fields[0], fields[1], fields[2])
	s.logger.Debug("added train", "destination", rec.Destination, "number", rec.TrainNumber, "time", rec.DepartureTime)
	return nil
}

func (s *Session) handleList(Command) error {
	fmt.Fprintln(s.out, ui.RenderTable(s.registry.Records()))
	return nil
}

func (s *Session) handleSelect(cmd Command) error {
	searchTime := cmd.Args[0]
	fmt.Fprintf(s.out, "Trains departing at or after %s:\n", searchTime)

	selected := s.registry.Select(searchTime)
	if len(selected) == 0 {
		fmt.Fprintf(s.out, "No trains depart at or after %s.\n", searchTime)
		return nil
	}
	fmt.Fprintln(s.out, ui.RenderTable(selected))
	return nil
}

func (s *Session) handleSave(cmd Command) error {
	path := cmd.Args[0]
	records := s.registry.Records()
	if err := s.store.Save(path, records); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %d trains to %s\n", len(records), path)
	return nil
}

func (s *Session) handleLoad(cmd Command) error {
	path := cmd.Args[0]
	n, err := s.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loaded %d trains from %s\n", n, path)
	return nil
}

func (s *Session) handleHelp(Command) error {
	WriteHelp(s.out)
	return nil
}

func (s *Session) handleExit(Command) error {
	return errExit
}

// report prints a failed command's error in user terms.
func (s *Session) report(cmd Command, err error) {
	var verrs trains.ValidationErrors
	switch {
	case errors.Is(err, trains.ErrNotFound):
		fmt.Fprintf(s.out, "File %s not found.\n", cmd.Args[0])
		if len(cmd.RawArgs) == 1 && cmd.RawArgs[0] != cmd.Args[0] {
			fmt.Fprintf(s.out, "Arguments are lower-cased; run with -preserve-case to open %s.\n", cmd.RawArgs[0])
		}
		if !s.keepOnMissing {
			s.logger.Warn("registry reset after missing file", "path", cmd.Args[0])
		}
	case errors.As(err, &verrs):
		fmt.Fprintf(s.out, "File %s failed validation; trains unchanged:\n", cmd.Args[0])
		for _, line := range verrs.Lines() {
			fmt.Fprintf(s.out, "  - %s\n", line)
		}
	case errors.Is(err, io.ErrUnexpectedEOF):
		fmt.Fprintln(s.out, "Input ended before the train was complete; nothing added.")
	default:
		fmt.Fprintf(s.out, "Command '%s' failed: %v\n", cmd.Name, err)
		s.logger.Error("command failed", "command", cmd.Name, "err", err)
	}
}

func (s *Session) record(cmd Command, err error) {
	ev := logging.Event{
		Command: cmd.Name,
		Args:    cmd.Args,
		Outcome: "ok",
		Records: s.registry.Len(),
	}
	switch {
	case errors.Is(err, errExit):
		ev.Outcome = "exit"
	case err != nil:
		ev.Outcome = "error"
		ev.Error = err.Error()
	}
	if jerr := s.journal.Record(ev); jerr != nil {
		s.logger.Warn("journal write failed", "err", jerr)
	}
}

// readLine reads one line without its terminator. A final line without a
// newline is returned before io.EOF.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// userMessage renders parser errors the way the shell prints them.
func userMessage(err error) string {
	var unknown *UnknownCommandError
	var argCount *ArgCountError
	switch {
	case errors.As(err, &unknown):
		return fmt.Sprintf("Unknown command %s", unknown.Name)
	case errors.As(err, &argCount):
		return fmt.Sprintf("Invalid number of arguments for '%s'.", argCount.Command)
	default:
		return err.Error()
	}
}

// WriteHelp prints the command list.
func WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w)
	for _, c := range commandTable {
		fmt.Fprintf(w, "  %-15s %s\n", c.usage, c.help)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input is lower-cased, file names included; start with -preserve-case to keep them.")
}
