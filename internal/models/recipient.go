package models

import (
	"encoding/json"
	"time"
)

type Recipient struct {
	ID                ID        `json:"id,omitempty"`
	Name              string    `json:"name"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	MiddleName        string    `json:"middle_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	BirthDate         string    `json:"birth_date"`
	PassportSeries    string    `json:"passport_series"`
	PassportNumber    string    `json:"passport_number"`
	PassportIssueDate string    `json:"passport_issue_date"`
	INN               string    `json:"inn"`
	CreatedAt         time.Time `json:"created_at,omitzero"`
}

type RecipientPatch struct {
	Name              *string `json:"name,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	MiddleName        *string `json:"middle_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	BirthDate         *string `json:"birth_date,omitempty"`
	PassportSeries    *string `json:"passport_series,omitempty"`
	PassportNumber    *string `json:"passport_number,omitempty"`
	PassportIssueDate *string `json:"passport_issue_date,omitempty"`
	INN               *string `json:"inn,omitempty"`
}

// recipientWire принимает и snake_case (backend), и camelCase (старые локальные записи).
type recipientWire struct {
	ID                     ID        `json:"id"`
	Name                   string    `json:"name"`
	FirstName              string    `json:"first_name"`
	FirstNameCamel         string    `json:"firstName"`
	LastName               string    `json:"last_name"`
	LastNameCamel          string    `json:"lastName"`
	MiddleName             string    `json:"middle_name"`
	MiddleNameCamel        string    `json:"middleName"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	BirthDate              string    `json:"birth_date"`
	BirthDateCamel         string    `json:"birthDate"`
	PassportSeries         string    `json:"passport_series"`
	PassportSeriesCamel    string    `json:"passportSeries"`
	PassportNumber         string    `json:"passport_number"`
	PassportNumberCamel    string    `json:"passportNumber"`
	PassportIssueDate      string    `json:"passport_issue_date"`
	PassportIssueDateCamel string    `json:"passportIssueDate"`
	INN                    string    `json:"inn"`
	CreatedAt              timestamp `json:"created_at"`
	CreatedAtCamel         timestamp `json:"createdAt"`
}

func (r *Recipient) UnmarshalJSON(b []byte) error {
	var w recipientWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = Recipient{
		ID:                w.ID,
		Name:              w.Name,
		FirstName:         firstNonEmpty(w.FirstName, w.FirstNameCamel),
		LastName:          firstNonEmpty(w.LastName, w.LastNameCamel),
		MiddleName:        firstNonEmpty(w.MiddleName, w.MiddleNameCamel),
		Email:             w.Email,
		Phone:             w.Phone,
		BirthDate:         firstNonEmpty(w.BirthDate, w.BirthDateCamel),
		PassportSeries:    firstNonEmpty(w.PassportSeries, w.PassportSeriesCamel),
		PassportNumber:    firstNonEmpty(w.PassportNumber, w.PassportNumberCamel),
		PassportIssueDate: firstNonEmpty(w.PassportIssueDate, w.PassportIssueDateCamel),
		INN:               w.INN,
		CreatedAt:         firstNonZero(w.CreatedAt.Time(), w.CreatedAtCamel.Time()),
	}
	return nil
}
