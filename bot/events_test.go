package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestFirstPhoto(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		Attachments: []*discordgo.MessageAttachment{
			{ID: "1", URL: "https://cdn/doc.pdf", ContentType: "application/pdf"},
			{ID: "2", URL: "https://cdn/shot.png", ContentType: "image/png"},
		},
	}}

	att := firstPhoto(m)
	if assert.NotNil(t, att) {
		assert.Equal(t, "2", att.ID)
	}

	empty := &discordgo.MessageCreate{Message: &discordgo.Message{}}
	assert.Nil(t, firstPhoto(empty))
}

func TestHelpText(t *testing.T) {
	help := helpText()
	assert.Contains(t, help, "/submit")
	assert.Contains(t, help, "/metrics <ugc_id>")
	assert.Contains(t, help, "/status <ugc_id>")
	assert.Contains(t, help, "/cancel")
	assert.NotContains(t, help, "/start - ")
}
