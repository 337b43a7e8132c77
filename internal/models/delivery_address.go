package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Службы доставки, доступные в форме адреса.
const (
	CarrierCDEK       = "CDEK"
	CarrierPostRu     = "Почта России"
	CarrierDPD        = "DPD"
	CarrierBusCourier = "BUS Курьер"
)

func DeliveryCompanies() []string {
	return []string{CarrierCDEK, CarrierPostRu, CarrierDPD, CarrierBusCourier}
}

type DeliveryAddress struct {
	ID        ID        `json:"id,omitempty"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type DeliveryAddressPatch struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (a DeliveryAddress) Validate() error {
	for _, c := range DeliveryCompanies() {
		if a.Company == c {
			return nil
		}
	}
	return &ValidationError{Field: "company", Reason: fmt.Sprintf("unknown delivery company %q", a.Company)}
}

type deliveryAddressWire struct {
	ID             ID        `json:"id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Address        string    `json:"address"`
	CreatedAt      timestamp `json:"created_at"`
	CreatedAtCamel timestamp `json:"createdAt"`
}

func (a *DeliveryAddress) UnmarshalJSON(b []byte) error {
	var w deliveryAddressWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*a = DeliveryAddress{
		ID:        w.ID,
		Name:      w.Name,
		Company:   w.Company,
		Address:   w.Address,
		CreatedAt: firstNonZero(w.CreatedAt.Time(), w.CreatedAtCamel.Time()),
	}
	return nil
}
