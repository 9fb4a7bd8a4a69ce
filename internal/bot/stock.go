package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/boxes"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

func (b *Bot) showStockPickProduct(ctx context.Context, chatID int64, editMsgID *int) {
	list, err := b.products.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка загрузки продуктов"))
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list {
		total, err := b.boxes.SumAmountByProduct(ctx, p.ID)
		if err != nil {
			total = 0
		}
		label := fmt.Sprintf("%s: %d %s", p.Name, total, unitLabel(p.Unit))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("st:prod:%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬇️ Выгрузить остатки", "st:export"),
	))
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	_ = b.states.Set(ctx, chatID, dialog.StateStockPickProd, dialog.Payload{})
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, "Склад — выберите продукт:", kb))
	} else {
		m := tgbotapi.NewMessage(chatID, "Склад — выберите продукт:")
		m.ReplyMarkup = kb
		b.send(m)
	}
}

// showStockList — коробки продукта, ближайший срок годности сверху.
func (b *Bot) showStockList(ctx context.Context, chatID int64, editMsgID int, productID int64) {
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
	if len(list) == 0 {
		b.editTextWithNav(chatID, editMsgID, fmt.Sprintf("«%s»: коробок на складе нет.", p.Name))
		return
	}

	today := b.today()
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, box := range list {
		exp := "без срока"
		if box.ExpirationDate != nil {
			exp = formatDate(*box.ExpirationDate)
		}
		label := fmt.Sprintf("#%d: %d %s, до %s", box.ID, box.Amount, unitLabel(p.Unit), exp)
		if box.SoonToExpire(today, p.SoonToExpireWeeks) {
			label = "⚠️ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("st:box:%d", box.ID)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateStockList, dialog.Payload{"product_id": float64(productID)})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID,
		fmt.Sprintf("Коробки «%s»:", p.Name), tgbotapi.NewInlineKeyboardMarkup(rows...)))
}

func (b *Bot) showBoxCard(ctx context.Context, chatID int64, editMsgID int, boxID int64) {
	box, err := b.boxes.GetByID(ctx, boxID)
	if err != nil || box == nil {
		b.editTextAndClear(chatID, editMsgID, "Коробка не найдена (возможно, уже списана)")
		return
	}
	p, err := b.products.GetByID(ctx, box.ProductID)
	if err != nil || p == nil {
		b.editTextAndClear(chatID, editMsgID, "Продукт не найден")
		return
	}

	exp := "не проставлен"
	if box.ExpirationDate != nil {
		exp = formatDate(*box.ExpirationDate)
	}
	warn := ""
	if box.SoonToExpire(b.today(), p.SoonToExpireWeeks) {
		warn = "\n⚠️ Срок годности скоро истекает!"
	}
	text := fmt.Sprintf(
		"Коробка #%d — %s\nКоличество: %d %s\nЦена: %d (с НДС: %d)\nСрок годности: %s%s",
		box.ID, p.Name, box.Amount, unitLabel(p.Unit), box.Price, box.PriceWithTaxes(), exp, warn,
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Срок годности", fmt.Sprintf("st:exp:%d", box.ID)),
			tgbotapi.NewInlineKeyboardButtonData("➖ Списать", fmt.Sprintf("st:wd:%d", box.ID)),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)

	_ = b.states.Set(ctx, chatID, dialog.StateStockBox, dialog.Payload{
		"product_id": float64(box.ProductID), "box_id": float64(box.ID),
	})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
}

func (b *Bot) askBoxExpiration(ctx context.Context, chatID int64, msgID int, boxID int64) {
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["box_id"] = float64(boxID)
	_ = b.states.Set(ctx, chatID, dialog.StateStockExpDate, payload)
	b.editTextAndClear(chatID, msgID, "Введите срок годности (ДД.ММ.ГГГГ) или «-», чтобы убрать:")
}

func (b *Bot) stockExpDateEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	boxID, ok := dialog.GetInt64(payload, "box_id")
	if !ok {
		_ = b.states.Reset(ctx, chatID)
		return
	}

	var exp *time.Time
	if t := strings.TrimSpace(text); t != "-" {
		d, err := ParseDate(t)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не разобрал дату. Формат: ДД.ММ.ГГГГ (или «-»)"))
			return
		}
		exp = &d
	}

	if err := b.boxes.SetExpiration(ctx, boxID, exp); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить срок годности"))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, "Срок годности сохранён."))
}

func (b *Bot) askBoxWithdraw(ctx context.Context, chatID int64, msgID int, boxID int64) {
	box, err := b.boxes.GetByID(ctx, boxID)
	if err != nil || box == nil {
		b.editTextAndClear(chatID, msgID, "Коробка не найдена (возможно, уже списана)")
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["box_id"] = float64(boxID)
	_ = b.states.Set(ctx, chatID, dialog.StateStockWithdraw, payload)

	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		fmt.Sprintf("Списать коробку #%d (%d)? Коробка исчезнет, появится запись списания.", box.ID, box.Amount),
		withdrawConfirmKeyboard(boxID)))
}

func (b *Bot) boxWithdrawConfirmed(ctx context.Context, chatID int64, msgID int, boxID int64) {
	st, _ := b.states.Get(ctx, chatID)
	productID, _ := dialog.GetInt64(st.Payload, "product_id")

	if err := b.boxes.Withdraw(ctx, boxID, b.today()); err != nil {
		b.editTextWithNav(chatID, msgID, "Не удалось списать коробку (возможно, её уже списали).")
		return
	}
	if productID != 0 {
		b.showStockList(ctx, chatID, msgID, productID)
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.editTextAndClear(chatID, msgID, "Коробка списана.")
}

// showExpiringReport — сводка «скоро истекает» по всем продуктам.
func (b *Bot) showExpiringReport(ctx context.Context, chatID int64) {
	list, err := b.products.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка загрузки продуктов"))
		return
	}

	today := b.today()
	var sb strings.Builder
	sb.WriteString("Скоро истекают:\n")
	found := false
	for _, p := range list {
		bx, err := b.boxes.ListByProduct(ctx, p.ID)
		if err != nil {
			continue
		}
		amount := boxes.AmountSoonToExpire(bx, today, p.SoonToExpireWeeks)
		if amount > 0 {
			found = true
			fmt.Fprintf(&sb, "⚠️ %s: %d %s\n", p.Name, amount, unitLabel(p.Unit))
		}
	}
	if !found {
		sb.WriteString("— ничего, всё свежее\n")
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

// exportWarehouseExcel — сводка склада: остатки, коробки, стоимость, «скоро истекает».
func (b *Bot) exportWarehouseExcel(ctx context.Context, chatID int64, msgID int) {
	list, err := b.products.List(ctx)
	if err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка загрузки продуктов")
		return
	}
	if len(list) == 0 {
		b.editTextWithNav(chatID, msgID, "Продуктов ещё нет.")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"product_id", "brand", "product", "unit", "amount", "boxes", "value_with_taxes", "soon_to_expire_amount",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		b.editTextAndClear(chatID, msgID, "Ошибка формирования файла (заголовок)")
		return
	}

	today := b.today()
	row := 2
	for _, p := range list {
		bx, err := b.boxes.ListByProduct(ctx, p.ID)
		if err != nil {
			b.editTextAndClear(chatID, msgID, "Ошибка загрузки коробок")
			return
		}
		excelRow := []interface{}{
			p.ID,
			p.Brand,
			p.Name,
			string(p.Unit),
			boxes.TotalAmount(bx),
			len(bx),
			boxes.TotalValue(bx),
			boxes.AmountSoonToExpire(bx, today, p.SoonToExpireWeeks),
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

	fileName := fmt.Sprintf("warehouse_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: buf.Bytes()})
	doc.Caption = "Сводка склада по продуктам."
	b.send(doc)

	b.editTextWithNav(chatID, msgID, "Сформирован файл со сводкой склада.")
}
