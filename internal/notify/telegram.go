// Package notify sends operational events to a Telegram chat so store
// operators get a live feed without tailing logs. Everything is
// best-effort: a delivery failure is logged and dropped.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
)

type Notifier struct {
	bot    *bot.Bot
	chatID int64
}

// New builds a Notifier. Returns a disabled no-op instance when the
// Telegram channel is not configured.
func New(cfg *config.Config) (*Notifier, error) {
	if !cfg.NotificationsEnabled() {
		return &Notifier{}, nil
	}
	b, err := bot.New(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Notifier{bot: b, chatID: cfg.TelegramChatID}, nil
}

func (n *Notifier) send(text string) {
	if n.bot == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send telegram notification", "error", err)
	}
}

func (n *Notifier) Registration(name, email string) {
	n.send(fmt.Sprintf("👤 *New Registration*\n\n*Name:* %s\n*Email:* `%s`", name, email))
}

func (n *Notifier) RedemptionIssued(userEmail string, rewardValueGBP, pointsUsed int64) {
	n.send(fmt.Sprintf("🎟 *Redemption Issued*\n\n*User:* `%s`\n*Reward:* £%d\n*Points:* %d",
		userEmail, rewardValueGBP, pointsUsed))
}

func (n *Notifier) RedemptionUsed(code string, rewardValueGBP int64) {
	n.send(fmt.Sprintf("✅ *Redemption Used*\n\n*Code:* `%s`\n*Reward:* £%d", code, rewardValueGBP))
}

func (n *Notifier) Error(err error, where string) {
	n.send(fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}
