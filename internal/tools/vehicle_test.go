package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVehicle_VINEcho(t *testing.T) {
	v := ResolveVehicle("1HGCM82633A004352", "", "", 0)

	assert.Equal(t, "1HGCM82633A004352", v.VIN)
	assert.Equal(t, "Toyota", v.Make)
	assert.Equal(t, "Camry", v.Model)
	assert.Equal(t, 2023, v.Year)
	assert.Equal(t, "found", v.Status)
}

func TestResolveVehicle_VINWithDetails(t *testing.T) {
	v := ResolveVehicle("1HGCM82633A004352", "Honda", "Accord", 2020)

	assert.Equal(t, "1HGCM82633A004352", v.VIN)
	assert.Equal(t, "Honda", v.Make)
	assert.Equal(t, "Accord", v.Model)
	assert.Equal(t, 2020, v.Year)
}

func TestResolveVehicle_SynthesizedVIN(t *testing.T) {
	v := ResolveVehicle("", "Honda", "Civic", 2021)

	assert.Equal(t, "MOCK2021HONCIV", v.VIN)
	assert.Equal(t, "Honda", v.Make)
	assert.Equal(t, "Civic", v.Model)
	assert.Equal(t, 2021, v.Year)
	assert.Equal(t, "found", v.Status)
}

func TestResolveVehicle_ShortNames(t *testing.T) {
	v := ResolveVehicle("", "BMW", "X5", 2022)

	assert.Equal(t, "MOCK2022BMWX5", v.VIN)
}

func TestResolveVehicle_Default(t *testing.T) {
	tests := []struct {
		name  string
		make  string
		model string
		year  int
	}{
		{name: "nothing supplied"},
		{name: "make only", make: "Ford"},
		{name: "make and model only", make: "Ford", model: "Focus"},
		{name: "year missing", make: "Ford", model: "Focus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ResolveVehicle("", tt.make, tt.model, tt.year)
			assert.Equal(t, "MOCK2023TOYCAM", v.VIN)
			assert.Equal(t, "Toyota", v.Make)
			assert.Equal(t, "Camry", v.Model)
			assert.Equal(t, 2023, v.Year)
		})
	}
}

func TestResolveVehicle_Idempotent(t *testing.T) {
	first := ResolveVehicle("", "Honda", "Civic", 2021)
	second := ResolveVehicle("", "Honda", "Civic", 2021)

	assert.Equal(t, first, second)
}
