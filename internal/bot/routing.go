package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/products"
	"github.com/Spok95/factory-bot/internal/domain/users"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		u, err := b.users.Register(ctx, users.Telegram{
			ID:        msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}, b.adminChat)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось сохранить профиль"))
			return
		}
		_ = b.states.Reset(ctx, chatID)
		text := "Учёт склада фабрики. Кнопки снизу: продукты, склад, закупки, поставщики."
		if u.IsAdmin() {
			text = "Привет, админ! " + text
		}
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)
		return

	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Команды:\n/start — начать работу\n/help — помощь\n/recipes — рецепты доступны по HTTP: GET /api/recipes"))
		return

	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
		return
	}
}

func (b *Bot) requireUser(ctx context.Context, tgID int64) *users.User {
	u, _ := b.users.GetByTelegramID(ctx, tgID)
	return u
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.requireUser(ctx, msg.From.ID) == nil {
		b.send(tgbotapi.NewMessage(chatID, "Сначала /start"))
		return
	}
	st, _ := b.states.Get(ctx, chatID)

	// Нижняя панель
	switch msg.Text {
	case "Продукты":
		b.showProductList(ctx, chatID, nil)
		return
	case "Склад":
		b.showStockPickProduct(ctx, chatID, nil)
		return
	case "Закупки":
		b.showPurchasesMenu(ctx, chatID, nil)
		return
	case "Поставщики":
		b.showProviderList(ctx, chatID)
		return
	case "Скоро истекают":
		b.showExpiringReport(ctx, chatID)
		return
	}

	// Текстовые вводы по состояниям
	switch st.State {
	case dialog.StateProdNewBrand:
		b.prodBrandNameEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateProdName:
		b.prodNameEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateProdWeeks:
		b.prodWeeksEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateProvName:
		b.provNameEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateProvPhone:
		b.provPhoneEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateProvEmail:
		b.provEmailEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StatePurDate:
		b.purDateEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StatePurBoxesQty:
		b.purBoxesQtyEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StatePurKgPerBox:
		b.purKgPerBoxEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StatePurPrice:
		b.purPriceEntered(ctx, chatID, msg.Text, st.Payload)
	case dialog.StateStockExpDate:
		b.stockExpDateEntered(ctx, chatID, msg.Text, st.Payload)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Используйте кнопки меню или /help"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data
	_ = b.answerCallback(cb, "", false)

	if b.requireUser(ctx, cb.From.ID) == nil {
		b.editTextAndClear(chatID, msgID, "Сначала /start")
		return
	}
	st, _ := b.states.Get(ctx, chatID)

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Действие отменено.")
		return
	case data == "nav:back":
		b.navBack(ctx, chatID, msgID, st)
		return

	// Продукты
	case data == "prod:new":
		b.startProductCreate(ctx, chatID, msgID)
	case data == "prod:br:new":
		b.askNewBrandName(ctx, chatID, msgID, st.Payload)
	case strings.HasPrefix(data, "prod:br:"):
		id := parseID(data, "prod:br:")
		b.prodBrandPicked(ctx, chatID, msgID, id, st.Payload)
	case strings.HasPrefix(data, "prod:unit:"):
		code := strings.TrimPrefix(data, "prod:unit:")
		b.prodUnitPicked(ctx, chatID, msgID, products.Unit(code), st.Payload)
	case strings.HasPrefix(data, "prod:del:"):
		b.prodDelete(ctx, chatID, msgID, cb.From.ID, parseID(data, "prod:del:"))
	case strings.HasPrefix(data, "prod:wd:"):
		b.showWithdrawals(ctx, chatID, msgID, parseID(data, "prod:wd:"))
	case strings.HasPrefix(data, "prod:item:"):
		b.showProductCard(ctx, chatID, msgID, parseID(data, "prod:item:"))

	// Поставщики
	case data == "prov:new":
		b.startProviderCreate(ctx, chatID, msgID)

	// Закупки
	case data == "pur:new":
		b.startPurchaseCreate(ctx, chatID, msgID)
	case data == "pur:journal":
		b.showPurchaseJournal(ctx, chatID, msgID)
	case data == "pur:export":
		b.exportPurchasesExcel(ctx, chatID, msgID)
	case data == "pur:more":
		b.purAddItemStart(ctx, chatID, msgID, st.Payload)
	case data == "pur:done":
		b.purFinish(ctx, chatID, msgID, st.Payload)
	case strings.HasPrefix(data, "pur:prov:"):
		b.purProviderPicked(ctx, chatID, msgID, parseID(data, "pur:prov:"), st.Payload)
	case strings.HasPrefix(data, "pur:prod:"):
		b.purProductPicked(ctx, chatID, msgID, parseID(data, "pur:prod:"), st.Payload)
	case strings.HasPrefix(data, "pur:item:"):
		b.showPurchaseCard(ctx, chatID, msgID, parseID(data, "pur:item:"))

	// Склад
	case data == "st:export":
		b.exportWarehouseExcel(ctx, chatID, msgID)
	case strings.HasPrefix(data, "st:prod:"):
		b.showStockList(ctx, chatID, msgID, parseID(data, "st:prod:"))
	case strings.HasPrefix(data, "st:box:"):
		b.showBoxCard(ctx, chatID, msgID, parseID(data, "st:box:"))
	case strings.HasPrefix(data, "st:exp:"):
		b.askBoxExpiration(ctx, chatID, msgID, parseID(data, "st:exp:"))
	case strings.HasPrefix(data, "st:wd:yes:"):
		b.boxWithdrawConfirmed(ctx, chatID, msgID, parseID(data, "st:wd:yes:"))
	case strings.HasPrefix(data, "st:wd:"):
		b.askBoxWithdraw(ctx, chatID, msgID, parseID(data, "st:wd:"))

	default:
		b.editTextAndClear(chatID, msgID, "Неизвестное действие.")
	}
}

// navBack возвращает на разумный предыдущий экран по текущему состоянию.
func (b *Bot) navBack(ctx context.Context, chatID int64, msgID int, st *dialog.Item) {
	switch st.State {
	case dialog.StateStockBox, dialog.StateStockWithdraw, dialog.StateStockExpDate:
		if pid, ok := dialog.GetInt64(st.Payload, "product_id"); ok {
			b.showStockList(ctx, chatID, msgID, pid)
			return
		}
		b.showStockPickProduct(ctx, chatID, &msgID)
	case dialog.StateStockList:
		b.showStockPickProduct(ctx, chatID, &msgID)
	case dialog.StateProdItem:
		b.showProductList(ctx, chatID, &msgID)
	case dialog.StatePurJournal:
		b.showPurchasesMenu(ctx, chatID, &msgID)
	default:
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Ок, вернулись в меню.")
	}
}

func parseID(data, prefix string) int64 {
	id, _ := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	return id
}
