package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	CheckServiceWith    = "with-check"
	CheckServiceWithout = "without-check"
)

// Статус, который форма заказа ставит новому товару.
const OrderStatusAwaitingAtWarehouse = "Ожидается на складе"

type Order struct {
	ID                      ID        `json:"id,omitempty"`
	ProductName             string    `json:"product_name"`
	Link                    string    `json:"link"`
	Price                   float64   `json:"price"`
	Quantity                int       `json:"quantity"`
	Photo                   *string   `json:"photo"`
	WarehousePhoto          *string   `json:"warehouse_photo"`
	Comment                 string    `json:"comment"`
	CheckService            string    `json:"check_service"`
	Consolidation           bool      `json:"consolidation"`
	RemovePostalPackaging   bool      `json:"remove_postal_packaging"`
	RemoveOriginalPackaging bool      `json:"remove_original_packaging"`
	PhotoReport             bool      `json:"photo_report"`
	Status                  string    `json:"status"`
	StatusDate              string    `json:"status_date"`
	TrackNumber             string    `json:"track_number"`
	CreatedAt               time.Time `json:"created_at,omitzero"`
}

type OrderPatch struct {
	ProductName             *string          `json:"product_name,omitempty"`
	Link                    *string          `json:"link,omitempty"`
	Price                   *float64         `json:"price,omitempty"`
	Quantity                *int             `json:"quantity,omitempty"`
	Photo                   Optional[string] `json:"photo,omitzero"`
	WarehousePhoto          Optional[string] `json:"warehouse_photo,omitzero"`
	Comment                 *string          `json:"comment,omitempty"`
	CheckService            *string          `json:"check_service,omitempty"`
	Consolidation           *bool            `json:"consolidation,omitempty"`
	RemovePostalPackaging   *bool            `json:"remove_postal_packaging,omitempty"`
	RemoveOriginalPackaging *bool            `json:"remove_original_packaging,omitempty"`
	PhotoReport             *bool            `json:"photo_report,omitempty"`
	Status                  *string          `json:"status,omitempty"`
	StatusDate              *string          `json:"status_date,omitempty"`
}

// NewTrackNumber выдаёт клиентский трек-номер вида CN<unix millis>.
func NewTrackNumber(now time.Time) string {
	return fmt.Sprintf("CN%d", now.UnixMilli())
}

// AssignTrackNumber выдаёт трек-номер при создании, если клиент его не прислал.
func (o *Order) AssignTrackNumber(now time.Time) {
	if o.TrackNumber == "" {
		o.TrackNumber = NewTrackNumber(now)
	}
}

// ApplyFormDefaults заполняет статус, как форма нового заказа: "Ожидается на складе"
// с датой в формате ДД.ММ.ГГГГ.
func (o *Order) ApplyFormDefaults(now time.Time) {
	if o.Status == "" {
		o.Status = OrderStatusAwaitingAtWarehouse
	}
	if o.StatusDate == "" {
		o.StatusDate = now.Format("02.01.2006")
	}
}

func (o Order) Validate() error {
	if o.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if o.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	switch o.CheckService {
	case "", CheckServiceWith, CheckServiceWithout:
	default:
		return &ValidationError{Field: "check_service", Reason: fmt.Sprintf("unknown value %q", o.CheckService)}
	}
	return nil
}

type orderWire struct {
	ID                           ID        `json:"id"`
	ProductName                  string    `json:"product_name"`
	ProductNameCamel             string    `json:"productName"`
	Link                         string    `json:"link"`
	Price                        number    `json:"price"`
	Quantity                     number    `json:"quantity"`
	Photo                        *string   `json:"photo"`
	WarehousePhoto               *string   `json:"warehouse_photo"`
	WarehousePhotoCamel          *string   `json:"warehousePhoto"`
	Comment                      string    `json:"comment"`
	CheckService                 string    `json:"check_service"`
	CheckServiceCamel            string    `json:"checkService"`
	Consolidation                *flag     `json:"consolidation"`
	RemovePostalPackaging        *flag     `json:"remove_postal_packaging"`
	RemovePostalPackagingCamel   *flag     `json:"removePostalPackaging"`
	RemoveOriginalPackaging      *flag     `json:"remove_original_packaging"`
	RemoveOriginalPackagingCamel *flag     `json:"removeOriginalPackaging"`
	PhotoReport                  *flag     `json:"photo_report"`
	PhotoReportCamel             *flag     `json:"photoReport"`
	Status                       string    `json:"status"`
	StatusDate                   string    `json:"status_date"`
	StatusDateCamel              string    `json:"statusDate"`
	TrackNumber                  string    `json:"track_number"`
	TrackNumberCamel             string    `json:"trackNumber"`
	CreatedAt                    timestamp `json:"created_at"`
	CreatedAtCamel               timestamp `json:"createdAt"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var w orderWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	warehousePhoto := w.WarehousePhoto
	if warehousePhoto == nil {
		warehousePhoto = w.WarehousePhotoCamel
	}
	*o = Order{
		ID:                      w.ID,
		ProductName:             firstNonEmpty(w.ProductName, w.ProductNameCamel),
		Link:                    w.Link,
		Price:                   float64(w.Price),
		Quantity:                int(w.Quantity),
		Photo:                   w.Photo,
		WarehousePhoto:          warehousePhoto,
		Comment:                 w.Comment,
		CheckService:            firstNonEmpty(w.CheckService, w.CheckServiceCamel),
		Consolidation:           pickFlag(w.Consolidation, nil),
		RemovePostalPackaging:   pickFlag(w.RemovePostalPackaging, w.RemovePostalPackagingCamel),
		RemoveOriginalPackaging: pickFlag(w.RemoveOriginalPackaging, w.RemoveOriginalPackagingCamel),
		PhotoReport:             pickFlag(w.PhotoReport, w.PhotoReportCamel),
		Status:                  w.Status,
		StatusDate:              firstNonEmpty(w.StatusDate, w.StatusDateCamel),
		TrackNumber:             firstNonEmpty(w.TrackNumber, w.TrackNumberCamel),
		CreatedAt:               firstNonZero(w.CreatedAt.Time(), w.CreatedAtCamel.Time()),
	}
	return nil
}
