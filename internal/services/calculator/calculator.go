// Package calculator — предварительный расчёт стоимости доставки из Китая.
package calculator

import (
	"math"
	"slices"
	"strings"

	"github.com/BearBump/CargoBox/internal/models"
)

// Тарифы, руб.
const (
	RatePerKg        = 150
	RatePerCubicM    = 1000
	RiskProtectionPc = 0.05
)

var cities = []string{
	"Москва",
	"Санкт-Петербург",
	"Новосибирск",
	"Екатеринбург",
	"Казань",
	"Нижний Новгород",
	"Челябинск",
	"Самара",
	"Омск",
	"Ростов-на-Дону",
}

type Input struct {
	WeightKg      float64 `json:"weight_kg"`
	VolumeM3      float64 `json:"volume_m3"`
	City          string  `json:"city"`
	DeclaredValue float64 `json:"declared_value"`
	// nil — включается автоматически при ненулевой объявленной стоимости
	RiskProtection *bool `json:"risk_protection,omitempty"`
}

type Estimate struct {
	City           string `json:"city"`
	RiskProtection bool   `json:"risk_protection"`
	Total          int64  `json:"total"`
	Currency       string `json:"currency"`
}

func Cities() []string {
	return slices.Clone(cities)
}

// SuggestCities фильтрует список городов по подстроке без учёта регистра.
func SuggestCities(q string) []string {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

func Calculate(in Input) (Estimate, error) {
	switch {
	case in.WeightKg < 0:
		return Estimate{}, &models.ValidationError{Field: "weight_kg", Reason: "must not be negative"}
	case in.VolumeM3 < 0:
		return Estimate{}, &models.ValidationError{Field: "volume_m3", Reason: "must not be negative"}
	case in.DeclaredValue < 0:
		return Estimate{}, &models.ValidationError{Field: "declared_value", Reason: "must not be negative"}
	}
	city := strings.TrimSpace(in.City)
	if city == "" {
		return Estimate{}, &models.ValidationError{Field: "city", Reason: "is required"}
	}
	if !slices.Contains(cities, city) {
		return Estimate{}, &models.ValidationError{Field: "city", Reason: "unsupported city " + city}
	}

	risk := in.DeclaredValue > 0
	if in.RiskProtection != nil {
		risk = *in.RiskProtection
	}

	total := in.WeightKg*RatePerKg + in.VolumeM3*RatePerCubicM
	if risk && in.DeclaredValue > 0 {
		total += in.DeclaredValue * RiskProtectionPc
	}
	return Estimate{
		City:           city,
		RiskProtection: risk,
		Total:          int64(math.Round(total)),
		Currency:       "RUB",
	}, nil
}
