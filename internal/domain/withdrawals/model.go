package withdrawals

import "time"

// Withdrawal — запись о списанной со склада коробке. Создаётся только
// через boxes.Repo.Withdraw, вручную её не заводят.
type Withdrawal struct {
	ID             int64
	ProductID      int64
	Product        string
	Amount         int64
	WithdrawalDate time.Time
}
