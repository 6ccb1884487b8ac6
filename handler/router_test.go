package handler

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("/submit"))
	assert.True(t, IsCommand("  /status abc"))
	assert.False(t, IsCommand("hello"))
	assert.False(t, IsCommand(""))
}

func TestDispatch(t *testing.T) {
	var gotArgs []string
	AddCommandHandler("echo", func(_ *discordgo.Session, _ *discordgo.MessageCreate, args []string) {
		gotArgs = args
	})

	m := &discordgo.MessageCreate{Message: &discordgo.Message{}}

	assert.True(t, Dispatch(nil, m, "/echo one two"))
	assert.Equal(t, []string{"one", "two"}, gotArgs)

	assert.True(t, Dispatch(nil, m, "/ECHO"), "command names are case-insensitive")
	assert.False(t, Dispatch(nil, m, "/unknown"))
	assert.False(t, Dispatch(nil, m, "   "))
}
