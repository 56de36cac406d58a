package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// Prefixes of the two prompt entry modes.
const (
	CommandPrefix = ":"
	SearchPrefix  = "/"
)

var (
	// ErrEmpty is returned by Parse for blank input.
	ErrEmpty = errors.New("empty command")
	// ErrUnknown is returned by Parse for input that names no command.
	ErrUnknown = errors.New("unknown command")
)

// names lists the command words in completion order. Aliases are resolved by
// aliases.
var names = []string{
	"help", "options", "list", "import", "receive", "export", "delete", "send",
	"edit", "sign", "generate", "refresh", "toggle", "scroll", "set", "get",
	"mode", "copy", "paste", "search", "next", "previous", "input", "quit", "none",
}

var aliases = map[string]string{
	"h":    "help",
	"opt":  "options",
	"ls":   "list",
	"imp":  "import",
	"rcv":  "receive",
	"exp":  "export",
	"del":  "delete",
	"gen":  "generate",
	"t":    "toggle",
	"s":    "set",
	"g":    "get",
	"m":    "mode",
	"c":    "copy",
	"p":    "paste",
	"prev": "previous",
	"q":    "quit",
	"q!":   "quit",
}

// Names returns the command words accepted by Parse.
func Names() []string {
	return append([]string(nil), names...)
}

// Parse converts prompt input into a command. A leading command prefix is
// ignored.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), CommandPrefix))
	if len(fields) == 0 {
		return nil, ErrEmpty
	}
	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	args := fields[1:]
	switch name {
	case "help":
		return ShowHelp{}, nil
	case "options":
		return ShowOptions{}, nil
	case "list":
		category, _, err := categoryArg(args, true)
		if err != nil {
			return nil, err
		}
		return ListKeys{Category: category}, nil
	case "import", "receive":
		return ImportKeys{Paths: args, Receive: name == "receive"}, nil
	case "export":
		category, rest, err := categoryArg(args, false)
		if err != nil {
			return nil, err
		}
		return ExportKeys{Category: category, Patterns: rest}, nil
	case "delete":
		category, rest, err := categoryArg(args, false)
		if err != nil {
			return nil, err
		}
		if len(rest) != 1 {
			return nil, errors.New("usage: delete [pub|sec] <id>")
		}
		return DeleteKey{Category: category, ID: rest[0]}, nil
	case "send", "edit", "sign":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: %s <id>", name)
		}
		switch name {
		case "send":
			return SendKey{ID: args[0]}, nil
		case "edit":
			return EditKey{ID: args[0]}, nil
		}
		return SignKey{ID: args[0]}, nil
	case "generate":
		return GenerateKey{}, nil
	case "refresh":
		if len(args) > 0 && strings.EqualFold(args[0], "keys") {
			return RefreshKeys{}, nil
		}
		return Refresh{}, nil
	case "toggle":
		return ToggleDetail{All: len(args) > 0 && strings.EqualFold(args[0], "all")}, nil
	case "scroll":
		return parseScroll(args)
	case "set":
		cmd := Set{}
		if len(args) > 0 {
			cmd.Option = strings.ToLower(args[0])
		}
		if len(args) > 1 {
			cmd.Value = strings.Join(args[1:], " ")
		}
		return cmd, nil
	case "get":
		cmd := Get{}
		if len(args) > 0 {
			cmd.Option = strings.ToLower(args[0])
		}
		return cmd, nil
	case "mode":
		if len(args) == 0 {
			return nil, errors.New("usage: mode <normal|visual|copy>")
		}
		mode, err := ParseMode(args[0])
		if err != nil {
			return nil, err
		}
		return SwitchMode{Mode: mode}, nil
	case "copy":
		if len(args) == 0 {
			return nil, errors.New("usage: copy <1|2|key|id|fingerprint|userid>")
		}
		target, err := ParseTarget(args[0])
		if err != nil {
			return nil, err
		}
		return Copy{Target: target}, nil
	case "paste":
		return Paste{}, nil
	case "search":
		return Search{Query: strings.Join(args, " ")}, nil
	case "next":
		return NextTab{}, nil
	case "previous":
		return PreviousTab{}, nil
	case "input":
		return EnableInput{}, nil
	case "quit":
		return Quit{}, nil
	case "none":
		return None{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknown, fields[0])
}

// categoryArg consumes an optional leading category argument. When strict is
// set, a non-category argument is an error instead of being left in place.
func categoryArg(args []string, strict bool) (keyring.Category, []string, error) {
	if len(args) == 0 {
		return keyring.Public, args, nil
	}
	category, err := keyring.ParseCategory(args[0])
	if err == nil {
		return category, args[1:], nil
	}
	if strict {
		return keyring.Public, nil, err
	}
	return keyring.Public, args, nil
}

func parseScroll(args []string) (Command, error) {
	cmd := Scroll{Amount: 1}
	if len(args) > 0 && strings.EqualFold(args[0], "row") {
		cmd.Row = true
		args = args[1:]
	}
	if len(args) == 0 {
		return nil, errors.New("usage: scroll [row] <up|down|top|bottom> [amount]")
	}
	direction, err := ParseDirection(args[0])
	if err != nil {
		return nil, err
	}
	cmd.Direction = direction
	if len(args) > 1 {
		amount, err := strconv.Atoi(args[1])
		if err != nil || amount < 1 {
			return nil, fmt.Errorf("invalid scroll amount: %q", args[1])
		}
		cmd.Amount = amount
	}
	return cmd, nil
}
