package handler

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandFunc handles one slash-style DM command with its arguments.
type CommandFunc func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

var commandHandlers = make(map[string]CommandFunc)

// AddCommandHandler registers a handler for a command name.
func AddCommandHandler(name string, handler CommandFunc) {
	commandHandlers[name] = handler
}

// IsCommand reports whether a message body looks like a command.
func IsCommand(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "/")
}

// Dispatch parses "/name args..." and invokes the registered handler.
// It reports whether the command name was recognised.
func Dispatch(s *discordgo.Session, m *discordgo.MessageCreate, content string) bool {
	fields := strings.Fields(strings.TrimSpace(content))
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))

	handler, ok := commandHandlers[name]
	if !ok {
		return false
	}
	handler(s, m, fields[1:])
	return true
}
