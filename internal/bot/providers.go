package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/factory-bot/internal/dialog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showProviderList(ctx context.Context, chatID int64) {
	list, err := b.providers.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка загрузки поставщиков"))
		return
	}

	var sb strings.Builder
	sb.WriteString("Поставщики:\n")
	if len(list) == 0 {
		sb.WriteString("— пока никого\n")
	}
	for _, p := range list {
		email := "—"
		if p.Email != nil && *p.Email != "" {
			email = *p.Email
		}
		fmt.Fprintf(&sb, "%s | тел: %s | email: %s\n", p.Name, p.Phone, email)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый поставщик", "prov:new"),
		),
	)
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) startProviderCreate(ctx context.Context, chatID int64, msgID int) {
	_ = b.states.Set(ctx, chatID, dialog.StateProvName, dialog.Payload{})
	b.editTextAndClear(chatID, msgID, "Введите имя поставщика:")
}

func (b *Bot) provNameEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(tgbotapi.NewMessage(chatID, "Имя не может быть пустым. Введите ещё раз:"))
		return
	}
	payload["name"] = name
	_ = b.states.Set(ctx, chatID, dialog.StateProvPhone, payload)
	b.send(tgbotapi.NewMessage(chatID, "Введите телефон:"))
}

func (b *Bot) provPhoneEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	payload["phone"] = strings.TrimSpace(text)
	_ = b.states.Set(ctx, chatID, dialog.StateProvEmail, payload)
	b.send(tgbotapi.NewMessage(chatID, "Введите email (или «-», если нет):"))
}

func (b *Bot) provEmailEntered(ctx context.Context, chatID int64, text string, payload dialog.Payload) {
	name, _ := dialog.GetString(payload, "name")
	phone, _ := dialog.GetString(payload, "phone")

	var email *string
	if t := strings.TrimSpace(text); t != "" && t != "-" {
		email = &t
	}

	p, err := b.providers.Create(ctx, name, email, phone)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось создать поставщика"))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Поставщик «%s» добавлен.", p.Name)))
}
