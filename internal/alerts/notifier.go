// Package alerts sends low-stock notifications via Telegram Bot API.
// It formats inventory warnings into human-readable messages and handles
// delivery with retry logic for reliability.
package alerts

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Architv27/Data-Dashboard/internal/models"
)

// Notifier handles Telegram low-stock notifications
type Notifier struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewNotifier creates a new Telegram notifier
func NewNotifier(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Notifier{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendLowStock sends a notification listing the products whose inventory
// dropped below the threshold.
func (n *Notifier) SendLowStock(products []models.RankedProduct, threshold int) error {
	if len(products) == 0 {
		return nil
	}
	return n.send(n.formatLowStockMessage(products, threshold))
}

// SendError notifies the operator that consecutive catalog fetches failed.
func (n *Notifier) SendError(consecutiveFailures int, lastErr error) error {
	message := fmt.Sprintf(
		"⚠️ *Catalog Dashboard Error*\n\n%d consecutive fetch failures\\.\nLast error: %s",
		consecutiveFailures, escapeMarkdownV2(lastErr.Error()))
	return n.send(message)
}

// SendRecovery notifies the operator that fetching resumed after failures.
func (n *Notifier) SendRecovery() error {
	return n.send("✅ *Catalog Dashboard Recovered*\n\nFetching resumed normally\\.")
}

// send delivers a MarkdownV2 message with bounded retry
func (n *Notifier) send(message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < n.maxRetries; i++ {
		_, err := n.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(n.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", n.maxRetries, lastErr)
}

// formatLowStockMessage formats low-stock products into a Telegram message
func (n *Notifier) formatLowStockMessage(products []models.RankedProduct, threshold int) string {
	message := "📦 *Low Stock Alert*\n\n"
	message += fmt.Sprintf("Products below %d units as of %s:\n\n",
		threshold, escapeMarkdownV2(time.Now().Format("2006-01-02 15:04:05")))

	for i, p := range products {
		name := escapeMarkdownV2(p.ProductName)
		inventory := escapeMarkdownV2(fmt.Sprintf("%.0f", p.Inventory.Or(0)))
		message += fmt.Sprintf("%d\\. %s\n   📉 Remaining: *%s*\n\n", i+1, name, inventory)
	}

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
