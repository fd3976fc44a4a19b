package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/coverbot/coverbot-backend/internal/vinapi"
)

type vehicleLookupArgs struct {
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type getQuoteArgs struct {
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  int    `json:"vehicle_year"`
	CoverageType string `json:"coverage_type"`
}

// NewDefaultRegistry builds the capability set available to the agent:
// vehicle lookup and quote retrieval. vin may be nil; the lookup tool
// then answers from mock data only.
func NewDefaultRegistry(vin *vinapi.Client, logger *logrus.Logger) (*Registry, error) {
	registry := NewRegistry()

	err := registry.Register(Definition{
		Name:        "vehicle_lookup",
		Description: "Look up vehicle information by VIN or by make, model and year.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"vin":   map[string]interface{}{"type": "string", "description": "Vehicle Identification Number"},
				"make":  map[string]interface{}{"type": "string", "description": "Vehicle make, e.g. Toyota"},
				"model": map[string]interface{}{"type": "string", "description": "Vehicle model, e.g. Camry"},
				"year":  map[string]interface{}{"type": "integer", "description": "Vehicle year, e.g. 2023"},
			},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			var args vehicleLookupArgs
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("invalid vehicle_lookup arguments: %w", err)
				}
			}
			logger.WithFields(logrus.Fields{
				"vin": args.VIN, "make": args.Make, "model": args.Model, "year": args.Year,
			}).Info("vehicle lookup tool called")

			if vin != nil && args.VIN != "" {
				decoded, err := vin.Decode(ctx, args.VIN)
				if err == nil {
					return Vehicle{
						VIN:    args.VIN,
						Make:   decoded.Make,
						Model:  decoded.Model,
						Year:   decoded.Year,
						Status: "found",
					}, nil
				}
				// the tool never fails: fall back to mock resolution
				logger.WithError(err).Warn("vin decode unavailable, using mock data")
			}

			return ResolveVehicle(args.VIN, args.Make, args.Model, args.Year), nil
		},
	})
	if err != nil {
		return nil, err
	}

	err = registry.Register(Definition{
		Name:        "get_quote",
		Description: "Get insurance quotes for a vehicle. Coverage type is one of liability, comprehensive or full.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"vehicle_make":  map[string]interface{}{"type": "string", "description": "Vehicle make, e.g. Toyota"},
				"vehicle_model": map[string]interface{}{"type": "string", "description": "Vehicle model, e.g. Camry"},
				"vehicle_year":  map[string]interface{}{"type": "integer", "description": "Vehicle year, e.g. 2023"},
				"coverage_type": map[string]interface{}{"type": "string", "description": "liability, comprehensive or full"},
			},
			"required": []string{"vehicle_make", "vehicle_model", "vehicle_year"},
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			var args getQuoteArgs
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("invalid get_quote arguments: %w", err)
				}
			}
			if args.CoverageType == "" {
				args.CoverageType = "full"
			}
			logger.WithFields(logrus.Fields{
				"make": args.VehicleMake, "model": args.VehicleModel,
				"year": args.VehicleYear, "coverage": args.CoverageType,
			}).Info("get quote tool called")

			return GenerateQuotes(args.VehicleMake, args.VehicleModel, args.VehicleYear, args.CoverageType), nil
		},
	})
	if err != nil {
		return nil, err
	}

	return registry, nil
}
