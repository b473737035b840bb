// Package commands parses palette input into structured event operations.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeRemove Type = "rm"
	TypeShow   Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries `add <title> @ <date> <time>`.
type AddArgs struct {
	Title string
	Date  string
	Time  string
}

// EditArgs carries `edit <id> <title> @ <date> <time>`.
type EditArgs struct {
	ID    int64
	Title string
	Date  string
	Time  string
}

type TargetArgs struct {
	ID int64
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Target *TargetArgs
	Show   *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone:
		return parseTarget(TypeDone, input, args)
	case TypeRemove:
		return parseTarget(TypeRemove, input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseSchedule splits "<title> @ <date> <time>" into its three parts.
func parseSchedule(args []string) (title, date, tm string, err *CommandError) {
	at := -1
	for i, a := range args {
		if a == "@" {
			at = i
			break
		}
	}
	if at < 1 {
		return "", "", "", &CommandError{Code: ErrCodeInvalidArgument, Message: "expected: <title> @ <date> <time>"}
	}
	if len(args)-at-1 != 2 {
		return "", "", "", &CommandError{Code: ErrCodeInvalidArgument, Message: "expected a date and a time after @"}
	}
	return strings.Join(args[:at], " "), args[at+1], args[at+2], nil
}

func parseAdd(raw string, args []string) (Command, error) {
	title, date, tm, cerr := parseSchedule(args)
	if cerr != nil {
		return Command{}, cerr
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Date: date, Time: tm}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires an event id"}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad event id: %s", args[0])}
	}
	title, date, tm, cerr := parseSchedule(args[1:])
	if cerr != nil {
		return Command{}, cerr
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{ID: id, Title: title, Date: date, Time: tm}}, nil
}

func parseTarget(kind Type, raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one event id", kind)}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad event id: %s", args[0])}
	}
	return Command{Type: kind, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "upcoming", "all", "done":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
