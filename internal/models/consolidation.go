package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DeliveryTypeAir   = "air"
	DeliveryTypeSea   = "sea"
	DeliveryTypeTrain = "train"
)

// Склады в Китае.
const (
	WarehouseGuangzhou = "guangzhou"
	WarehouseYiwu      = "yiwu"
	WarehouseShenzhen  = "shenzhen"
)

type Consolidation struct {
	ID           ID        `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DeliveryType string    `json:"delivery_type"`
	Warehouse    string    `json:"warehouse"`
	Recipient    string    `json:"recipient"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

type ConsolidationPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DeliveryType *string `json:"delivery_type,omitempty"`
	Warehouse    *string `json:"warehouse,omitempty"`
	Recipient    *string `json:"recipient,omitempty"`
	Address      *string `json:"address,omitempty"`
}

func (c Consolidation) Validate() error {
	switch c.DeliveryType {
	case "", DeliveryTypeAir, DeliveryTypeSea, DeliveryTypeTrain:
	default:
		return &ValidationError{Field: "delivery_type", Reason: fmt.Sprintf("unknown value %q", c.DeliveryType)}
	}
	switch c.Warehouse {
	case "", WarehouseGuangzhou, WarehouseYiwu, WarehouseShenzhen:
	default:
		return &ValidationError{Field: "warehouse", Reason: fmt.Sprintf("unknown value %q", c.Warehouse)}
	}
	return nil
}

type consolidationWire struct {
	ID                ID        `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	DeliveryType      string    `json:"delivery_type"`
	DeliveryTypeCamel string    `json:"deliveryType"`
	Warehouse         string    `json:"warehouse"`
	Recipient         ID        `json:"recipient"`
	Address           ID        `json:"address"`
	CreatedAt         timestamp `json:"created_at"`
	CreatedAtCamel    timestamp `json:"createdAt"`
}

func (c *Consolidation) UnmarshalJSON(b []byte) error {
	var w consolidationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*c = Consolidation{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		DeliveryType: firstNonEmpty(w.DeliveryType, w.DeliveryTypeCamel),
		Warehouse:    w.Warehouse,
		Recipient:    string(w.Recipient),
		Address:      string(w.Address),
		CreatedAt:    firstNonZero(w.CreatedAt.Time(), w.CreatedAtCamel.Time()),
	}
	return nil
}
