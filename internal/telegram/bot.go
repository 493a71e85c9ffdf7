package telegram

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mudarris/backend/internal/bot"
)

// Bot is the Telegram polling adapter. It owns no state of its own: every
// text update is handed to the dispatcher and the returned replies sent
// back in order.
type Bot struct {
	api    *tgbotapi.BotAPI
	svc    *bot.Service
	tracks []string
}

func NewBot(token string, svc *bot.Service, tracks []string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, svc: svc, tracks: tracks}, nil
}

// Start runs the polling loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	log.Printf("[telegram] authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("[telegram] shutting down")
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	replies := b.svc.OnMessage(ctx, msg.From.ID, text, time.Now())

	for _, reply := range replies {
		out := tgbotapi.NewMessage(msg.Chat.ID, reply)
		// The greeting lists the tracks; offer them as a reply keyboard too.
		if text == "/start" {
			out.ReplyMarkup = b.trackKeyboard()
		}
		if _, err := b.api.Send(out); err != nil {
			log.Printf("[telegram] send message: %v", err)
		}
	}
}

func (b *Bot) trackKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, track := range b.tracks {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(track)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(bot.KeywordStartQuiz),
		tgbotapi.NewKeyboardButton(bot.KeywordProfile),
		tgbotapi.NewKeyboardButton(bot.KeywordLeaderboard),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}
