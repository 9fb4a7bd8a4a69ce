package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/boxes"
	"github.com/Spok95/factory-bot/internal/domain/products"
	"github.com/Spok95/factory-bot/internal/infra/db"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func unitLabel(u products.Unit) string {
	switch u {
	case products.UnitPiece:
		return "шт"
	case products.UnitKilo:
		return "кг"
	case products.UnitGram:
		return "г"
	case products.UnitPot:
		return "банка"
	}
	return string(u)
}

func (b *Bot) showProductList(ctx context.Context, chatID int64, editMsgID *int) {
	list, err := b.products.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка загрузки продуктов"))
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list {
		label := p.Name
		if p.Brand != "" {
			label = fmt.Sprintf("%s — %s", p.Brand, p.Name)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("prod:item:%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Новый продукт", "prod:new"),
	))
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	_ = b.states.Set(ctx, chatID, dialog.StateProdList, dialog.Payload{})
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, "Продукты:", kb))
	} else {
		m := tgbotapi.NewMessage(chatID, "Продукты:")
		m.ReplyMarkup = kb
		b.send(m)
	}
}

// showProductCard — карточка продукта с живыми итогами по складу.
func (b *Bot) showProductCard(ctx context.Context, chatID int64, editMsgID int, productID int64) {
	p, err := b.products.GetByID(ctx, productID)
	if err != nil || p == nil {
		b.editTextAndClear(chatID, editMsgID, "Продукт не найден")
		return
	}

	list, err := b.boxes.ListByProduct(ctx, productID)
	if err != nil {
		b.editTextAndClear(chatID, editMsgID, "Ошибка загрузки коробок")
		return
	}

	today := b.today()
	total := boxes.TotalAmount(list)
	value := boxes.TotalValue(list)
	expiring := boxes.AmountSoonToExpire(list, today, p.SoonToExpireWeeks)

	withdrawnLine := "Списано всего: —"
	if _, err := b.withdrawals.TotalAmountByProduct(ctx, productID); errors.Is(err, db.ErrNotImplemented) {
		withdrawnLine = "Списано всего: считается в новой модели списаний"
	}

	text := fmt.Sprintf(
		"%s (%s)\nЕдиница: %s\nПорог «скоро истекает»: %d нед.\n\nНа складе: %d\nКоробок: %d\nСтоимость с НДС: %d\nСкоро истекает: %d\n%s",
		p.Name, p.Brand, unitLabel(p.Unit), p.SoonToExpireWeeks,
		total, len(list), value, expiring, withdrawnLine,
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Коробки", fmt.Sprintf("st:prod:%d", p.ID)),
			tgbotapi.NewInlineKeyboardButtonData("📄 Списания", fmt.Sprintf("prod:wd:%d", p.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("prod:del:%d", p.ID)),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)

	_ = b.states.Set(ctx, chatID, dialog.StateProdItem, dialog.Payload{"product_id": float64(p.ID)})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
}

func (b *Bot) showWithdrawals(ctx context.Context, chatID int64, editMsgID int, productID int64) {
	list, err := b.withdrawals.ListByProduct(ctx, productID)
	if err != nil {
		b.editTextAndClear(chatID, editMsgID, "Ошибка загрузки списаний")
		return
	}
	if len(list) == 0 {
		b.editTextWithNav(chatID, editMsgID, "Списаний по продукту нет.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Списания (свежие сверху):\n")
	for _, w := range list {
		fmt.Fprintf(&sb, "%s — %d\n", formatDate(w.WithdrawalDate), w.Amount)
	}
	b.editTextWithNav(chatID, editMsgID, sb.String())
}

// prodDelete — удаление продукта каскадом, только для админа.
func (b *Bot) prodDelete(ctx context.Context, chatID int64, msgID int, tgID, productID int64) {
	if !b.requireUser(ctx, tgID).IsAdmin() {
		b.editTextWithNav(chatID, msgID, "Удалять продукты может только админ.")
		return
	}
	if err := b.products.Delete(ctx, productID); err != nil {
		b.editTextWithNav(chatID, msgID, "Не удалось удалить продукт.")
		return
	}
	b.showProductList(ctx, chatID, &msgID)
}

/*** СОЗДАНИЕ ПРОДУКТА ***/

func (b *Bot) startProductCreate(ctx context.Context, chatID int64, msgID int) {
	list, err := b.brands.List(ctx)
	if err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка загрузки брендов")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, br := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(br.Name, fmt.Sprintf("prod:br:%d", br.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Новый бренд", "prod:br:new"),
	))
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateProdPickBr, dialog.Payload{})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Выберите бренд:", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) askNewBrandName(ctx context.Context, chatID int64, msgID int, payload dialog.Payload) {
	_ = b.states.Set(ctx, chatID, dialog.StateProdNewBrand, payload)
	b.editTextAndClear(chatID, msgID, "Введите название бренда:")
}

func (b *Bot) prodBrandNameEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	br, err := b.brands.GetOrCreate(ctx, text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить бренд"))
		return
	}
	payload["brand_id"] = float64(br.ID)
	_ = b.states.Set(ctx, chatID, dialog.StateProdName, payload)
	b.send(tgbotapi.NewMessage(chatID, "Введите название продукта:"))
}

func (b *Bot) prodBrandPicked(ctx context.Context, chatID int64, msgID int, brandID int64, payload dialog.Payload) {
	payload["brand_id"] = float64(brandID)
	_ = b.states.Set(ctx, chatID, dialog.StateProdName, payload)
	b.editTextAndClear(chatID, msgID, "Введите название продукта:")
}

func (b *Bot) prodNameEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(tgbotapi.NewMessage(chatID, "Название не может быть пустым. Введите ещё раз:"))
		return
	}
	payload["name"] = name
	_ = b.states.Set(ctx, chatID, dialog.StateProdUnit, payload)
	m := tgbotapi.NewMessage(chatID, "Единица измерения:")
	m.ReplyMarkup = unitKeyboard()
	b.send(m)
}

func (b *Bot) prodUnitPicked(ctx context.Context, chatID int64, msgID int, unit products.Unit, payload dialog.Payload) {
	if !unit.Valid() {
		b.editTextAndClear(chatID, msgID, "Неизвестная единица измерения")
		return
	}
	payload["unit"] = string(unit)
	_ = b.states.Set(ctx, chatID, dialog.StateProdWeeks, payload)
	b.editTextAndClear(chatID, msgID, "За сколько недель до срока годности предупреждать? (целое число, 0 — не предупреждать заранее)")
}

func (b *Bot) prodWeeksEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	weeks, err := ParseNonNegativeInt(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Нужно целое число недель (0 и больше). Введите ещё раз:"))
		return
	}
	brandID, _ := dialog.GetInt64(payload, "brand_id")
	name, _ := dialog.GetString(payload, "name")
	unit, _ := dialog.GetString(payload, "unit")

	p, err := b.products.Create(ctx, name, brandID, products.Unit(unit), int(weeks))
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			b.send(tgbotapi.NewMessage(chatID, "Продукт с таким названием уже существует. Введите другое название:"))
			_ = b.states.Set(ctx, chatID, dialog.StateProdName, payload)
			return
		}
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать продукт"))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Продукт «%s» создан.", p.Name)))
}
