package tools

import (
	"fmt"
	"strings"
)

// Vehicle is the canonical vehicle model returned by the lookup tool.
type Vehicle struct {
	VIN    string `json:"vin,omitempty"`
	Make   string `json:"make"`
	Model  string `json:"model"`
	Year   int    `json:"year"`
	Status string `json:"status"`
}

const (
	defaultMake  = "Toyota"
	defaultModel = "Camry"
	defaultYear  = 2023
)

// ResolveVehicle performs deterministic mock vehicle resolution.
//
// A supplied VIN is echoed back with defaults filling missing fields.
// Complete make/model/year synthesizes a mock VIN. Anything less
// returns a fixed default vehicle. It never fails.
func ResolveVehicle(vin, make, model string, year int) Vehicle {
	if vin != "" {
		v := Vehicle{VIN: vin, Make: make, Model: model, Year: year, Status: "found"}
		if v.Make == "" {
			v.Make = defaultMake
		}
		if v.Model == "" {
			v.Model = defaultModel
		}
		if v.Year == 0 {
			v.Year = defaultYear
		}
		return v
	}

	if make != "" && model != "" && year != 0 {
		return Vehicle{
			VIN:    mockVIN(make, model, year),
			Make:   make,
			Model:  model,
			Year:   year,
			Status: "found",
		}
	}

	return Vehicle{
		VIN:    "MOCK2023TOYCAM",
		Make:   defaultMake,
		Model:  defaultModel,
		Year:   defaultYear,
		Status: "found",
	}
}

func mockVIN(make, model string, year int) string {
	return fmt.Sprintf("MOCK%d%s%s", year, prefix(make), prefix(model))
}

func prefix(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToUpper(s)
}
