package repl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a shell command.
type Kind int

const (
	KindNone Kind = iota // empty input
	KindAdd
	KindList
	KindSelect
	KindSave
	KindLoad
	KindHelp
	KindExit
)

// anyArgs marks commands that ignore extra arguments.
const anyArgs = -1

type commandSpec struct {
	name  string
	kind  Kind
	args  int
	usage string
	help  string
}

// commandTable is also the help text, in display order.
var commandTable = []commandSpec{
	{name: "add", kind: KindAdd, args: anyArgs, usage: "add", help: "add a train"},
	{name: "list", kind: KindList, args: anyArgs, usage: "list", help: "list all trains"},
	{name: "select", kind: KindSelect, args: 1, usage: "select <time>", help: "list trains departing at or after <time>"},
	{name: "save", kind: KindSave, args: 1, usage: "save <file>", help: "save trains to a JSON file"},
	{name: "load", kind: KindLoad, args: 1, usage: "load <file>", help: "load trains from a JSON file"},
	{name: "help", kind: KindHelp, args: anyArgs, usage: "help", help: "show this list"},
	{name: "exit", kind: KindExit, args: anyArgs, usage: "exit", help: "quit the program"},
}

var commandsByName = func() map[string]commandSpec {
	m := make(map[string]commandSpec, len(commandTable))
	for _, c := range commandTable {
		m[c.name] = c
	}
	return m
}()

func (k Kind) String() string {
	for _, c := range commandTable {
		if c.kind == k {
			return c.name
		}
	}
	if k == KindNone {
		return "none"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is a parsed input line.
type Command struct {
	Kind Kind
	Name string
	Args []string
	// RawArgs holds the arguments as typed, before case folding.
	RawArgs []string
}

// UnknownCommandError is returned for an unrecognized first token.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %s", e.Name)
}

// ArgCountError is returned when a command gets the wrong number of arguments.
type ArgCountError struct {
	Command string
	Want    int
	Got     int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("invalid number of arguments for '%s' (want %d, got %d)", e.Command, e.Want, e.Got)
}

// Parser turns input lines into commands.
type Parser struct {
	lower           cases.Caser
	preserveArgCase bool
}

// NewParser creates a parser. With preserveArgCase set only the command word
// is lower-cased; otherwise the whole line is.
func NewParser(preserveArgCase bool) *Parser {
	return &Parser{
		lower:           cases.Lower(language.Und),
		preserveArgCase: preserveArgCase,
	}
}

// Parse parses one input line. Empty input yields a KindNone command.
// The returned command carries the name and arguments even on error.
func (p *Parser) Parse(line string) (Command, error) {
	raw := strings.Fields(line)
	if !p.preserveArgCase {
		line = p.lower.String(line)
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{Kind: KindNone}, nil
	}

	name := tokens[0]
	if p.preserveArgCase {
		name = p.lower.String(name)
	}
	cmd := Command{Name: name, Args: tokens[1:], RawArgs: tokens[1:]}
	if len(raw) == len(tokens) {
		cmd.RawArgs = raw[1:]
	}

	spec, ok := commandsByName[name]
	if !ok {
		return cmd, &UnknownCommandError{Name: name}
	}
	cmd.Kind = spec.kind

	if spec.args != anyArgs && len(cmd.Args) != spec.args {
		return cmd, &ArgCountError{Command: name, Want: spec.args, Got: len(cmd.Args)}
	}
	return cmd, nil
}
