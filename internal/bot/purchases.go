package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/purchases"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

func (b *Bot) showPurchasesMenu(ctx context.Context, chatID int64, editMsgID *int) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новая закупка", "pur:new"),
			tgbotapi.NewInlineKeyboardButtonData("📄 Журнал", "pur:journal"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Выгрузить в Excel", "pur:export"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)

	_ = b.states.Set(ctx, chatID, dialog.StatePurMenu, dialog.Payload{})
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, "Закупки — выберите действие", kb))
	} else {
		m := tgbotapi.NewMessage(chatID, "Закупки — выберите действие")
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) showPurchaseJournal(ctx context.Context, chatID int64, editMsgID int) {
	list, err := b.purchases.List(ctx, 20)
	if err != nil {
		b.editTextAndClear(chatID, editMsgID, "Ошибка загрузки журнала")
		return
	}
	if len(list) == 0 {
		b.editTextWithNav(chatID, editMsgID, "Закупок ещё нет.")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list {
		label := fmt.Sprintf("%s — %s", formatDate(p.Date), p.Provider)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("pur:item:%d", p.ID)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StatePurJournal, dialog.Payload{})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, "Журнал закупок (свежие сверху):", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

// showPurchaseCard — закупка с позициями и итогами.
func (b *Bot) showPurchaseCard(ctx context.Context, chatID int64, editMsgID int, purchaseID int64) {
	p, err := b.purchases.GetByID(ctx, purchaseID)
	if err != nil || p == nil {
		b.editTextAndClear(chatID, editMsgID, "Закупка не найдена")
		return
	}
	items, err := b.purchases.ListItems(ctx, purchaseID)
	if err != nil {
		b.editTextAndClear(chatID, editMsgID, "Ошибка загрузки позиций")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Закупка от %s, поставщик: %s\n\n", formatDate(p.Date), p.Provider)
	for _, it := range items {
		fmt.Fprintf(&sb, "%s: %d кор. × %d кг, %d/кор. = %d\n",
			it.Product, it.BoxesQuantity, it.AmountPerBoxKG, it.PricePerBox, it.TotalPrice())
		if perKG, ok := it.PricePerKG(); ok {
			fmt.Fprintf(&sb, "   цена за кг: %d\n", perKG)
		}
	}
	fmt.Fprintf(&sb, "\nИтого: %d\nС НДС: %d\nОбщий вес: %d кг",
		purchases.TotalPrice(items), purchases.TotalPriceWithTaxes(items), purchases.TotalAmount(items))

	b.editTextWithNav(chatID, editMsgID, sb.String())
}

/*** СОЗДАНИЕ ЗАКУПКИ ***/

func (b *Bot) startPurchaseCreate(ctx context.Context, chatID int64, msgID int) {
	list, err := b.providers.List(ctx)
	if err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка загрузки поставщиков")
		return
	}
	if len(list) == 0 {
		b.editTextWithNav(chatID, msgID, "Сначала добавьте поставщика (кнопка «Поставщики»).")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, fmt.Sprintf("pur:prov:%d", p.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StatePurPickProv, dialog.Payload{})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Выберите поставщика:", tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) purProviderPicked(ctx context.Context, chatID int64, msgID int, providerID int64, payload dialog.Payload) {
	payload["provider_id"] = float64(providerID)
	_ = b.states.Set(ctx, chatID, dialog.StatePurDate, payload)
	b.editTextAndClear(chatID, msgID, "Дата закупки (ДД.ММ.ГГГГ) или «сегодня»:")
}

func (b *Bot) purDateEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	var date time.Time
	if strings.EqualFold(strings.TrimSpace(text), "сегодня") {
		date = b.today()
	} else {
		var err error
		date, err = ParseDate(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не разобрал дату. Формат: ДД.ММ.ГГГГ"))
			return
		}
	}
	providerID, _ := dialog.GetInt64(payload, "provider_id")
	p, err := b.purchases.Create(ctx, providerID, date)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать закупку"))
		return
	}
	payload["purchase_id"] = float64(p.ID)
	b.purAddItemStartMsg(ctx, chatID, payload)
}

func (b *Bot) purAddItemStart(ctx context.Context, chatID int64, msgID int, payload dialog.Payload) {
	b.editTextAndClear(chatID, msgID, "Добавим ещё позицию.")
	b.purAddItemStartMsg(ctx, chatID, payload)
}

func (b *Bot) purAddItemStartMsg(ctx context.Context, chatID int64, payload dialog.Payload) {
	b.clearPrevStep(ctx, chatID)
	list, err := b.products.List(ctx)
	if err != nil || len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Нет продуктов — сначала создайте продукт."))
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, fmt.Sprintf("pur:prod:%d", p.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	m := tgbotapi.NewMessage(chatID, "Продукт для позиции:")
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "err", err)
		return
	}
	b.saveLastStep(ctx, chatID, dialog.StatePurPickProd, payload, sent.MessageID)
}

func (b *Bot) purProductPicked(ctx context.Context, chatID int64, msgID int, productID int64, payload dialog.Payload) {
	payload["product_id"] = float64(productID)
	delete(payload, "last_mid")
	_ = b.states.Set(ctx, chatID, dialog.StatePurBoxesQty, payload)
	b.editTextAndClear(chatID, msgID, "Сколько коробок?")
}

func (b *Bot) purBoxesQtyEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	qty, err := ParsePositiveInt(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Нужно целое число коробок (> 0). Введите ещё раз:"))
		return
	}
	if qty > purchases.MaxBoxesPerItem {
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Слишком много коробок (максимум %d). Введите ещё раз:", purchases.MaxBoxesPerItem)))
		return
	}
	payload["boxes_qty"] = float64(qty)
	_ = b.states.Set(ctx, chatID, dialog.StatePurKgPerBox, payload)
	b.send(tgbotapi.NewMessage(chatID, "Сколько кг в коробке?"))
}

func (b *Bot) purKgPerBoxEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	kg, err := ParseNonNegativeInt(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Нужно целое число кг (0 и больше). Введите ещё раз:"))
		return
	}
	payload["kg_per_box"] = float64(kg)
	_ = b.states.Set(ctx, chatID, dialog.StatePurPrice, payload)
	b.send(tgbotapi.NewMessage(chatID, "Цена за коробку (без НДС, целое число):"))
}

func (b *Bot) purPriceEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	price, err := ParseNonNegativeInt(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Нужна целая цена (0 и больше). Введите ещё раз:"))
		return
	}
	purchaseID, _ := dialog.GetInt64(payload, "purchase_id")
	productID, _ := dialog.GetInt64(payload, "product_id")
	qty, _ := dialog.GetInt64(payload, "boxes_qty")
	kg, _ := dialog.GetInt64(payload, "kg_per_box")

	it, err := b.purchases.AddItem(ctx, purchaseID, productID, qty, kg, price)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось добавить позицию"))
		return
	}

	// позиция добавлена, коробки созданы — спрашиваем, что дальше
	delete(payload, "product_id")
	delete(payload, "boxes_qty")
	delete(payload, "kg_per_box")
	_ = b.states.Set(ctx, chatID, dialog.StatePurMoreItem, payload)

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Позиция добавлена: %d кор. × %d кг, итого %d.\nСоздано %d коробок (срок годности проставьте на складе).",
		it.BoxesQuantity, it.AmountPerBoxKG, it.TotalPrice(), it.BoxesQuantity))
	m.ReplyMarkup = purchaseMoreKeyboard()
	b.send(m)
}

func (b *Bot) purFinish(ctx context.Context, chatID int64, msgID int, payload dialog.Payload) {
	purchaseID, ok := dialog.GetInt64(payload, "purchase_id")
	_ = b.states.Reset(ctx, chatID)
	if !ok {
		b.editTextAndClear(chatID, msgID, "Готово.")
		return
	}
	items, err := b.purchases.ListItems(ctx, purchaseID)
	if err != nil {
		b.editTextAndClear(chatID, msgID, "Закупка сохранена.")
		return
	}
	b.editTextAndClear(chatID, msgID, fmt.Sprintf(
		"Закупка сохранена: %d позиций, итого %d (с НДС %d).",
		len(items), purchases.TotalPrice(items), purchases.TotalPriceWithTaxes(items)))
}

/*** EXCEL ***/

func (b *Bot) exportPurchasesExcel(ctx context.Context, chatID int64, msgID int) {
	list, err := b.purchases.List(ctx, 500)
	if err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка загрузки закупок")
		return
	}
	if len(list) == 0 {
		b.editTextWithNav(chatID, msgID, "Закупок ещё нет.")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"purchase_id", "date", "provider", "positions", "total_price", "total_price_with_taxes", "total_amount_kg",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка формирования файла (заголовок)")
		return
	}

	row := 2
	for _, p := range list {
		items, err := b.purchases.ListItems(ctx, p.ID)
		if err != nil {
			b.editTextAndClear(chatID, msgID, "Ошибка загрузки позиций")
			return
		}
		excelRow := []interface{}{
			p.ID,
			formatDate(p.Date),
			p.Provider,
			len(items),
			purchases.TotalPrice(items),
			purchases.TotalPriceWithTaxes(items),
			purchases.TotalAmount(items),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			b.editTextAndClear(chatID, msgID, "Ошибка формирования файла (ячейки)")
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			b.editTextAndClear(chatID, msgID, "Ошибка формирования файла (строки)")
			return
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка записи файла")
		return
	}

	fileName := fmt.Sprintf("purchases_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: buf.Bytes()})
	doc.Caption = "Журнал закупок с итогами."
	b.send(doc)

	b.editTextWithNav(chatID, msgID, "Сформирован файл с журналом закупок.")
}
