package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/YH949494/APUGC/command"
	"github.com/YH949494/APUGC/handler"
)

func registerEventHandlers(s *discordgo.Session, b *Bot) {
	s.AddHandler(b.onMessageCreate)

	s.Identify.Intents = discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
}

func (b *Bot) registerCommands() {
	handler.AddCommandHandler("start", b.cmdStart)
	handler.AddCommandHandler("help", b.cmdStart)
	handler.AddCommandHandler("submit", b.cmdSubmit)
	handler.AddCommandHandler("metrics", b.cmdMetrics)
	handler.AddCommandHandler("status", b.cmdStatus)
	handler.AddCommandHandler("cancel", b.cmdCancel)
}

// onMessageCreate routes every incoming message: commands go through the
// handler registry, photos and free text feed the active draft. Anything
// outside a 1:1 DM is turned away.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// GuildID is empty only for DM channels.
	if m.GuildID != "" {
		if handler.IsCommand(m.Content) {
			b.reply(s, m, "DM me to submit/claim UGC proof. (Open this bot in private chat.)")
		}
		return
	}

	if handler.IsCommand(m.Content) {
		if !handler.Dispatch(s, m, m.Content) {
			b.reply(s, m, helpText())
		}
		return
	}

	if att := firstPhoto(m); att != nil {
		data, err := b.fetch(att.URL)
		if err != nil {
			// Recoverable: the draft stays where it is, the user resends.
			b.log.Warn("attachment download failed", zap.String("url", att.URL), zap.Error(err))
			b.reply(s, m, "Couldn't download your photo. Please send it again.")
			return
		}
		b.reply(s, m, b.engine.HandlePhoto(m.Author.ID, data))
		return
	}

	b.reply(s, m, b.engine.HandleText(m.Author.ID, m.Content))
}

func (b *Bot) cmdStart(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	b.reply(s, m, helpText())
}

// helpText builds the /start greeting from the command table.
func helpText() string {
	var sb strings.Builder
	sb.WriteString("UGC Proof Bot\n\nCommands:\n")
	for _, c := range command.AllCommands {
		if c.Name == "start" {
			continue
		}
		fmt.Fprintf(&sb, "%s - %s\n", c.Usage, c.Description)
	}
	return sb.String()
}

func (b *Bot) cmdSubmit(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	b.reply(s, m, b.engine.StartSubmit(m.Author.ID, strings.ToLower(m.Author.Username)))
}

func (b *Bot) cmdMetrics(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	b.reply(s, m, b.engine.StartMetrics(m.Author.ID, id))
}

func (b *Bot) cmdStatus(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	b.reply(s, m, b.engine.Status(m.Author.ID, id))
}

func (b *Bot) cmdCancel(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	b.reply(s, m, b.engine.Cancel(m.Author.ID))
}

// firstPhoto returns the first image attachment on the message, if any.
func firstPhoto(m *discordgo.MessageCreate) *discordgo.MessageAttachment {
	for _, att := range m.Attachments {
		if strings.HasPrefix(att.ContentType, "image/") {
			return att
		}
	}
	return nil
}
