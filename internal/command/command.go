// Package command parses the ":" command line into typed actions. Parsing
// is pure; the controller applies the resulting Action against the model
// and the data-plane coordinator.
package command

import (
	"fmt"
	"strings"
)

// Kind discriminates the parsed action.
type Kind int

const (
	// KindSwitchScreen switches to the screen named in Arg.
	KindSwitchScreen Kind = iota
	// KindProduce opens the producer against the topic in Arg.
	KindProduce
	// KindConsume starts consuming the topic in Arg.
	KindConsume
	// KindConnect connects to the comma-separated brokers in Arg.
	KindConnect
	// KindDisconnect drops the current connection.
	KindDisconnect
	// KindStatus shows a connection summary in the status bar.
	KindStatus
	// KindQuit terminates the application.
	KindQuit
)

// Action is one successfully parsed command.
type Action struct {
	Kind Kind
	Arg  string
}

// UnknownError reports a verb outside the command table.
type UnknownError struct {
	Verb string
}

func (e *UnknownError) Error() string {
	if e.Verb == "" {
		return "empty command"
	}
	return fmt.Sprintf("unknown command: %s", e.Verb)
}

// MissingArgumentError reports a verb that requires an argument but got
// none.
type MissingArgumentError struct {
	Verb string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s requires an argument", e.Verb)
}

// Screen-switch verbs map straight to screen names the controller resolves.
var screenVerbs = map[string]string{
	"dashboard": "dashboard",
	"topics":    "topics",
	"producer":  "producer",
	"consumer":  "consumer",
	"groups":    "groups",
	"monitor":   "monitor",
	"settings":  "settings",
}

// Parse turns a completed command-line string into an Action. The grammar
// is a verb followed by whitespace-separated arguments.
func Parse(text string) (Action, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return Action{}, &UnknownError{}
	}
	verb, args := parts[0], parts[1:]

	if screen, ok := screenVerbs[verb]; ok {
		return Action{Kind: KindSwitchScreen, Arg: screen}, nil
	}

	switch verb {
	case "produce":
		if len(args) == 0 {
			return Action{}, &MissingArgumentError{Verb: verb}
		}
		return Action{Kind: KindProduce, Arg: args[0]}, nil
	case "consume":
		if len(args) == 0 {
			return Action{}, &MissingArgumentError{Verb: verb}
		}
		return Action{Kind: KindConsume, Arg: args[0]}, nil
	case "connect":
		if len(args) == 0 {
			return Action{}, &MissingArgumentError{Verb: verb}
		}
		return Action{Kind: KindConnect, Arg: strings.Join(args, ",")}, nil
	case "disconnect":
		return Action{Kind: KindDisconnect}, nil
	case "status":
		return Action{Kind: KindStatus}, nil
	case "q", "quit":
		return Action{Kind: KindQuit}, nil
	}
	return Action{}, &UnknownError{Verb: verb}
}
