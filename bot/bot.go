package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/YH949494/APUGC/config"
	"github.com/YH949494/APUGC/workflow"
)

// Bot owns the Discord session and forwards DM traffic to the workflow
// engine. All reward conversations happen in private 1:1 channels.
type Bot struct {
	session *discordgo.Session
	engine  *workflow.Engine
	fetch   AttachmentFetcher
	log     *zap.Logger
}

// New creates the bot and registers its command and event handlers.
func New(cfg *config.Config, engine *workflow.Engine, log *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	b := &Bot{
		session: dg,
		engine:  engine,
		fetch:   fetchAttachment,
		log:     log,
	}

	b.registerCommands()
	registerEventHandlers(dg, b)
	return b, nil
}

// Start opens the websocket connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	b.log.Info("bot connected")
	return nil
}

// Stop closes the websocket connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if text == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, text); err != nil {
		b.log.Error("send reply failed", zap.String("channel_id", m.ChannelID), zap.Error(err))
	}
}
