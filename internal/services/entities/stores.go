package entities

import (
	"time"

	"github.com/BearBump/CargoBox/internal/models"
	"github.com/BearBump/CargoBox/internal/storage/localstore"
)

type (
	RecipientStore       = Store[models.Recipient, models.RecipientPatch]
	OrderStore           = Store[models.Order, models.OrderPatch]
	DeliveryAddressStore = Store[models.DeliveryAddress, models.DeliveryAddressPatch]
	ConsolidationStore   = Store[models.Consolidation, models.ConsolidationPatch]
)

// Stores: четыре хранилища поверх общего гейта, клиента и локального бэкенда.
type Stores struct {
	Recipients        *RecipientStore
	Orders            *OrderStore
	DeliveryAddresses *DeliveryAddressStore
	Consolidations    *ConsolidationStore
}

func NewStores(remote Remote, gate Availability, blobs localstore.Blobs, ordersListTimeout time.Duration, opts ...Option) *Stores {
	return &Stores{
		Recipients:        NewStore[models.Recipient, models.RecipientPatch](RecipientsKind(), remote, gate, blobs, opts...),
		Orders:            NewStore[models.Order, models.OrderPatch](OrdersKind(ordersListTimeout), remote, gate, blobs, opts...),
		DeliveryAddresses: NewStore[models.DeliveryAddress, models.DeliveryAddressPatch](DeliveryAddressesKind(), remote, gate, blobs, opts...),
		Consolidations:    NewStore[models.Consolidation, models.ConsolidationPatch](ConsolidationsKind(), remote, gate, blobs, opts...),
	}
}
