package domain

// Severity — уровень пользовательского уведомления.
type Severity string

const (
	SeverityError Severity = "error"
)

// Тексты уведомлений об ошибках операций с корзиной.
const (
	MsgOutOfStock    = "requested quantity exceeds available stock"
	MsgAddFailed     = "failed to add product"
	MsgRemoveFailed  = "failed to remove product"
	MsgUpdateFailed  = "failed to change product quantity"
	MsgPersistFailed = "failed to save cart"
)

// Операции корзины (для уведомлений, метрик и команд).
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
)

// Notification — сообщение для пользователя (fire-and-forget).
type Notification struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Op        string   `json:"op"`
	ProductID int64    `json:"productId"`
}

// Command — команда изменения корзины из внешнего источника (Kafka).
type Command struct {
	Op        string `json:"op"`
	ProductID int64  `json:"productId"`
	Amount    int    `json:"amount,omitempty"`
}
