package usecase

import "time"

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

// CartSaved публикуется после каждого успешного сохранения корзины.
const CartSaved OutboxEventType = "cart.saved"

// OutboxEvent — запись transactional outbox: создаётся в одной транзакции
// с изменением корзины и асинхронно доставляется в Kafka воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	CartID      string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type WriteRawMessageReq struct {
	CartID  string
	Payload []byte
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, cartID string, payload []byte, createdAt time.Time) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		CartID:    cartID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: createdAt,
	}
}

func NewWriteRawMessageReq(cartID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		CartID:  cartID,
		Payload: payload,
	}
}
