// Package repl implements the interactive train registry shell.
//
// A Session reads one line at a time, parses it into a Command and dispatches
// it through a handler table. The session owns its trains.Registry; nothing is
// shared between sessions.
//
// # Commands
//
//   - add: prompt for destination, train number and departure time
//   - list: print all trains
//   - select <time>: print trains departing at or after <time>
//   - save <file>: write trains to a JSON file
//   - load <file>: replace trains with the contents of a JSON file
//   - help: print the command list
//   - exit: leave the shell
//
// Input is lower-cased before splitting, so commands are case-insensitive.
// Empty lines are ignored. End of input behaves like exit.
package repl
