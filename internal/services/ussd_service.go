package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shamba-service/internal/config"
	"shamba-service/internal/models"
)

const (
	ussdContinue = "CON "
	ussdEnd      = "END "

	ussdMainMenu = "CON Welcome to Shamba Smart\n" +
		"1. Get Planting Advice\n" +
		"2. Report Observation\n" +
		"3. Market Prices"
	ussdCropMenu = "CON Select Crop:\n" +
		"1. Maize\n" +
		"2. Beans\n" +
		"3. Cassava"
	ussdLocationPrompt = "CON Enter your Location (District/Town):"
	ussdIndicatorMenu  = "CON What did you see?\n" +
		"1. Bird Migration\n" +
		"2. Flowering\n" +
		"3. Changes in Wind"
	ussdObservationThanks = "END Thank you! Your observation has been recorded and will help the community."
	ussdAdviceUnavailable = "END Sorry, we could not get the forecast right now. Please try again later."
	ussdInvalidOption     = "END Invalid Option"

	ussdPriceCount = 3
)

var ussdCrops = map[string]string{
	"1": "Maize",
	"2": "Beans",
	"3": "Cassava",
}

type ussdIndicator struct {
	label     string
	indicator models.IndicatorType
}

var ussdIndicators = map[string]ussdIndicator{
	"1": {"Bird Migration", models.IndicatorBirdBehavior},
	"2": {"Flowering", models.IndicatorPlantFlowering},
	"3": {"Changes in Wind", models.IndicatorWindPattern},
}

// fallbackPrices is shown when no quotes are stored for the default market
var fallbackPrices = []models.MarketPrice{
	{Crop: "Maize", PricePerBag: 3500},
	{Crop: "Beans", PricePerBag: 8400},
	{Crop: "Potatoes", PricePerBag: 1500},
}

type IUssdService interface {
	Handle(ctx context.Context, req models.UssdRequest) (string, error)
}

// UssdService walks the feature-phone menu. Every call is stateless: the gateway
// resends the whole "*"-joined input on each step.
type UssdService struct {
	cfg          config.USSDConfig
	planting     IPlantingService
	observations IObservationService
	market       IMarketService
}

func NewUssdService(cfg config.USSDConfig, planting IPlantingService, observations IObservationService, market IMarketService) *UssdService {
	return &UssdService{
		cfg:          cfg,
		planting:     planting,
		observations: observations,
		market:       market,
	}
}

// Handle returns the CON/END response for the session input. An error means the
// caller should answer with a system error.
func (s *UssdService) Handle(ctx context.Context, req models.UssdRequest) (string, error) {
	parts := splitUssdInput(req.Text)
	if len(parts) == 0 {
		return ussdMainMenu, nil
	}

	switch parts[0] {
	case "1":
		return s.plantingMenu(ctx, parts), nil
	case "2":
		return s.observationMenu(ctx, parts, req.PhoneNumber)
	case "3":
		return s.priceMenu(ctx)
	default:
		return ussdInvalidOption, nil
	}
}

func splitUssdInput(text string) []string {
	var parts []string
	for _, p := range strings.Split(text, "*") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func (s *UssdService) plantingMenu(ctx context.Context, parts []string) string {
	switch len(parts) {
	case 1:
		return ussdCropMenu
	case 2:
		if _, ok := ussdCrops[parts[1]]; !ok {
			return ussdInvalidOption
		}
		return ussdLocationPrompt
	case 3:
		crop, ok := ussdCrops[parts[1]]
		if !ok {
			return ussdInvalidOption
		}
		location := parts[2]

		advice, err := s.planting.GetAdvice(ctx, s.cfg.DefaultLat, s.cfg.DefaultLon, crop)
		if err != nil {
			slog.Error("ussd planting advice failed", "crop", crop, "error", err)
			return ussdAdviceUnavailable
		}
		return fmt.Sprintf("%sPrediction for %s in %s:\n%s (confidence %d%%)\nRain next 7 days: %smm\n%s",
			ussdEnd, crop, location, strings.ToUpper(string(advice.Status)), advice.Confidence,
			toFixed1(advice.Analysis.Rainfall.Next7Days), advice.Timing)
	default:
		return ussdInvalidOption
	}
}

func (s *UssdService) observationMenu(ctx context.Context, parts []string, phone string) (string, error) {
	switch len(parts) {
	case 1:
		return ussdIndicatorMenu, nil
	case 2:
		choice, ok := ussdIndicators[parts[1]]
		if !ok {
			return ussdInvalidOption, nil
		}
		_, err := s.observations.CreateObservation(ctx, models.CreateObservationRequest{
			IndicatorType: choice.indicator,
			Description:   "Reported via USSD: " + choice.label,
			UserID:        phone,
		})
		if err != nil {
			return "", fmt.Errorf("failed to record ussd observation: %w", err)
		}
		return ussdObservationThanks, nil
	default:
		return ussdInvalidOption, nil
	}
}

func (s *UssdService) priceMenu(ctx context.Context) (string, error) {
	market := s.cfg.DefaultMarket
	prices, err := s.market.GetLatestPrices(ctx, market, ussdPriceCount)
	if err != nil {
		return "", fmt.Errorf("failed to load ussd prices: %w", err)
	}

	var b strings.Builder
	b.WriteString(ussdEnd)
	if len(prices) == 0 {
		prices = fallbackPrices
		fmt.Fprintf(&b, "Current Prices (%s Market):\n", market)
	} else {
		fmt.Fprintf(&b, "Current Prices (%s):\n", market)
	}
	for i, p := range prices {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: KES %s/bag", p.Crop, formatAmount(p.PricePerBag))
	}
	return b.String(), nil
}

// formatAmount prints whole shillings without a decimal part
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
