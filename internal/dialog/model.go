package dialog

type State string

const (
	StateIdle State = "idle"

	// Продукты
	StateProdList     State = "prod_list"
	StateProdItem     State = "prod_item"      // карточка продукта (итоги + действия)
	StateProdPickBr   State = "prod_pick_br"   // выбор бренда при создании
	StateProdNewBrand State = "prod_new_brand" // ввод имени нового бренда
	StateProdName     State = "prod_name"
	StateProdUnit     State = "prod_unit"
	StateProdWeeks    State = "prod_weeks" // порог «скоро истекает», недели

	// Поставщики
	StateProvName  State = "prov_name"
	StateProvPhone State = "prov_phone"
	StateProvEmail State = "prov_email"

	// Закупки
	StatePurMenu     State = "pur_menu"
	StatePurPickProv State = "pur_pick_prov"
	StatePurDate     State = "pur_date" // ввод даты закупки
	StatePurPickProd State = "pur_pick_prod"
	StatePurBoxesQty State = "pur_boxes_qty"
	StatePurKgPerBox State = "pur_kg_per_box"
	StatePurPrice    State = "pur_price" // цена за коробку
	StatePurMoreItem State = "pur_more"  // ещё позиция / завершить
	StatePurJournal  State = "pur_journal"

	// Склад (коробки)
	StateStockPickProd State = "stock_pick_prod"
	StateStockList     State = "stock_list"     // коробки продукта по сроку годности
	StateStockBox      State = "stock_box"      // карточка коробки
	StateStockExpDate  State = "stock_exp_date" // ввод срока годности
	StateStockWithdraw State = "stock_withdraw" // подтверждение списания
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
