package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/boxes"
	"github.com/Spok95/factory-bot/internal/domain/brands"
	"github.com/Spok95/factory-bot/internal/domain/products"
	"github.com/Spok95/factory-bot/internal/domain/providers"
	"github.com/Spok95/factory-bot/internal/domain/purchases"
	"github.com/Spok95/factory-bot/internal/domain/users"
	"github.com/Spok95/factory-bot/internal/domain/withdrawals"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	loc       *time.Location
	users     *users.Repo
	states    *dialog.Repo
	adminChat int64

	brands      *brands.Repo
	products    *products.Repo
	providers   *providers.Repo
	purchases   *purchases.Repo
	boxes       *boxes.Repo
	withdrawals *withdrawals.Repo
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, loc *time.Location,
	usersRepo *users.Repo, statesRepo *dialog.Repo, adminChatID int64,
	brandsRepo *brands.Repo, productsRepo *products.Repo, providersRepo *providers.Repo,
	purchasesRepo *purchases.Repo, boxesRepo *boxes.Repo, withdrawalsRepo *withdrawals.Repo) *Bot {

	return &Bot{
		api: api, log: log, loc: loc,
		users: usersRepo, states: statesRepo, adminChat: adminChatID,
		brands: brandsRepo, products: productsRepo, providers: providersRepo,
		purchases: purchasesRepo, boxes: boxesRepo, withdrawals: withdrawalsRepo,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

// today — текущая дата в таймзоне фабрики, как полночь UTC.
// Колонки DATE из pgx тоже приходят полночью UTC, так их можно сравнивать.
func (b *Bot) today() time.Time {
	now := time.Now().In(b.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
