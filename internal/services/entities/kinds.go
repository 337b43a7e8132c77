package entities

import (
	"time"

	"github.com/BearBump/CargoBox/internal/models"
	"github.com/BearBump/CargoBox/internal/storage/localstore"
)

// DefaultOrdersListTimeout: сколько ждём список заказов, прежде чем показать пустой.
const DefaultOrdersListTimeout = 8 * time.Second

// PartialAvailabilityPolicy описывает, как GetAll ведёт себя при медленном
// или сбойном remote. TreatSlowAsEmpty: таймаут и любая ошибка дают пустой
// список, гейт не понижается.
type PartialAvailabilityPolicy struct {
	TreatSlowAsEmpty bool
	Timeout          time.Duration
}

type Policy struct {
	ReprobeBeforeCreate bool
	List                PartialAvailabilityPolicy
	BulkDelete          bool
}

// Kind описывает всё, чем виды сущностей отличаются друг от друга.
type Kind[T any] struct {
	Name       string
	StorageKey string
	Endpoint   string

	ID func(T) models.ID
	// Stamp проставляет id и дату создания. Перед remote create вызывается
	// с нулевыми значениями: их назначает backend.
	Stamp func(item *T, id models.ID, now time.Time)
	// Prepare заполняет поля, которые клиент выдаёт сам при любом создании.
	Prepare  func(item *T, now time.Time)
	Validate func(T) error

	Policy Policy
}

func RecipientsKind() Kind[models.Recipient] {
	return Kind[models.Recipient]{
		Name:       "recipients",
		StorageKey: localstore.KeyRecipients,
		Endpoint:   "/recipients",
		ID:         func(r models.Recipient) models.ID { return r.ID },
		Stamp: func(r *models.Recipient, id models.ID, now time.Time) {
			r.ID, r.CreatedAt = id, now
		},
	}
}

func OrdersKind(listTimeout time.Duration) Kind[models.Order] {
	if listTimeout <= 0 {
		listTimeout = DefaultOrdersListTimeout
	}
	return Kind[models.Order]{
		Name:       "orders",
		StorageKey: localstore.KeyOrders,
		Endpoint:   "/orders",
		ID:         func(o models.Order) models.ID { return o.ID },
		Stamp: func(o *models.Order, id models.ID, now time.Time) {
			o.ID, o.CreatedAt = id, now
		},
		Prepare:  (*models.Order).AssignTrackNumber,
		Validate: models.Order.Validate,
		Policy: Policy{
			ReprobeBeforeCreate: true,
			List:                PartialAvailabilityPolicy{TreatSlowAsEmpty: true, Timeout: listTimeout},
			BulkDelete:          true,
		},
	}
}

func DeliveryAddressesKind() Kind[models.DeliveryAddress] {
	return Kind[models.DeliveryAddress]{
		Name:       "delivery-addresses",
		StorageKey: localstore.KeyDeliveryAddresses,
		Endpoint:   "/delivery-addresses",
		ID:         func(a models.DeliveryAddress) models.ID { return a.ID },
		Stamp: func(a *models.DeliveryAddress, id models.ID, now time.Time) {
			a.ID, a.CreatedAt = id, now
		},
		Validate: models.DeliveryAddress.Validate,
	}
}

func ConsolidationsKind() Kind[models.Consolidation] {
	return Kind[models.Consolidation]{
		Name:       "consolidations",
		StorageKey: localstore.KeyConsolidations,
		Endpoint:   "/consolidations",
		ID:         func(c models.Consolidation) models.ID { return c.ID },
		Stamp: func(c *models.Consolidation, id models.ID, now time.Time) {
			c.ID, c.CreatedAt = id, now
		},
		Validate: models.Consolidation.Validate,
	}
}
