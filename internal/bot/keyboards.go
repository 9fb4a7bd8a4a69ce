package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func unitKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("шт", "prod:unit:un"),
			tgbotapi.NewInlineKeyboardButtonData("кг", "prod:unit:kg"),
			tgbotapi.NewInlineKeyboardButtonData("г", "prod:unit:gr"),
			tgbotapi.NewInlineKeyboardButtonData("банка", "prod:unit:pt"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func withdrawConfirmKeyboard(boxID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Списать", fmt.Sprintf("st:wd:yes:%d", boxID)),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func purchaseMoreKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Ещё позиция", "pur:more"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Завершить", "pur:done"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
}

// mainReplyKeyboard Нижняя панель для всех подтверждённых пользователей.
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("Продукты"), tgbotapi.NewKeyboardButton("Склад")},
			{tgbotapi.NewKeyboardButton("Закупки"), tgbotapi.NewKeyboardButton("Поставщики")},
			{tgbotapi.NewKeyboardButton("Скоро истекают")},
		},
	}
}
