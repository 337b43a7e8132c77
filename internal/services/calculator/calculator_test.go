package calculator

import (
	"testing"

	"github.com/BearBump/CargoBox/internal/models"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCalculate(t *testing.T) {
	cases := []struct {
		name     string
		in       Input
		want     int64
		wantRisk bool
	}{
		{name: "weight only", in: Input{WeightKg: 2, City: "Москва"}, want: 300},
		{name: "weight and volume", in: Input{WeightKg: 1.5, VolumeM3: 0.2, City: "Казань"}, want: 425},
		{name: "risk auto on", in: Input{WeightKg: 1, City: "Омск", DeclaredValue: 10000}, want: 650, wantRisk: true},
		{name: "risk explicitly off", in: Input{WeightKg: 1, City: "Омск", DeclaredValue: 10000, RiskProtection: ptr(false)}, want: 150},
		{name: "risk on without value", in: Input{WeightKg: 1, City: "Самара", RiskProtection: ptr(true)}, want: 150, wantRisk: true},
		{name: "rounds half up", in: Input{WeightKg: 0.01, City: "Москва"}, want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Total)
			require.Equal(t, tc.wantRisk, got.RiskProtection)
			require.Equal(t, "RUB", got.Currency)
		})
	}
}

func TestCalculate_Rejects(t *testing.T) {
	for _, in := range []Input{
		{WeightKg: -1, City: "Москва"},
		{VolumeM3: -0.1, City: "Москва"},
		{DeclaredValue: -5, City: "Москва"},
		{WeightKg: 1},
		{WeightKg: 1, City: "Пекин"},
	} {
		_, err := Calculate(in)
		var ve *models.ValidationError
		require.ErrorAs(t, err, &ve)
	}
}

func TestSuggestCities(t *testing.T) {
	require.Equal(t, []string{"Санкт-Петербург"}, SuggestCities("петер"))
	require.Equal(t, []string{"Новосибирск", "Нижний Новгород"}, SuggestCities("НОВ"))
	require.Len(t, SuggestCities(""), len(Cities()))
	require.Empty(t, SuggestCities("zzz"))
}

func TestCities_ReturnsCopy(t *testing.T) {
	c := Cities()
	c[0] = "x"
	require.Equal(t, "Москва", Cities()[0])
}
