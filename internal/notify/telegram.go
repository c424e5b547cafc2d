// Package notify delivers run summaries over Telegram. Notification is
// best-effort: a delivery failure is logged, never propagated.
package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"job-scout/internal/pipeline"
)

type TelegramNotifier struct {
	bot    *tele.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	// send-only: no poller, the bot never consumes updates
	bot, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) NotifyRun(summary *pipeline.Summary) {
	msg := fmt.Sprintf(
		"Discovery run finished at %s\n"+
			"Searches: %d, listings: %d\n"+
			"Inserted: %d, reactivated: %d, blocked: %d, skipped: %d\n"+
			"Errors: %d",
		time.Now().Format("15:04 MST"),
		summary.SearchesRun,
		summary.JobsFound,
		summary.Inserted,
		summary.Reactivated,
		summary.Blocked,
		summary.Skipped,
		len(summary.Errors),
	)

	recipient := &tele.Chat{ID: n.chatID}
	if _, err := n.bot.Send(recipient, msg); err != nil {
		n.logger.Error("failed to send run notification",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err),
		)
	}
}
