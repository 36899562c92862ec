package services

import (
	"fmt"
	"strconv"
	"strings"

	"shamba-service/internal/models"
)

const ussdShortCodeHint = "Dial %s anytime for"

type priceQuote struct {
	Crop   string
	Price  float64
	Change float64
}

var defaultAlertPrices = []priceQuote{
	{Crop: "Maize", Price: 3850, Change: 5.2},
	{Crop: "Beans", Price: 8750, Change: 3.8},
}

func welcomeSubscriberSMS(plan, shortCode string) string {
	if plan != "" && plan != models.DefaultSubscriptionPlan {
		return fmt.Sprintf("🌾 Welcome to Shamba Smart!\n\nYou've signed up for the %s plan.\n\n"+
			ussdShortCodeHint+":\n- Planting advice\n- Market prices\n- Weather forecasts\n\nHappy farming!", plan, shortCode)
	}
	return fmt.Sprintf("🌾 Welcome to Shamba Smart!\n\nThank you for subscribing to our updates.\n\n"+
		ussdShortCodeHint+" farming insights.\n\nHappy farming!", shortCode)
}

func welcomeSubscriberEmail(plan string) (subject, body string) {
	if plan == "" {
		plan = models.DefaultSubscriptionPlan
	}
	subject = "🌾 Welcome to Shamba Smart!"
	planLine := ""
	if plan != models.DefaultSubscriptionPlan {
		subject = fmt.Sprintf("🌾 Welcome to Shamba Smart - %s Plan!", plan)
		planLine = fmt.Sprintf("Your Plan: %s\n\n", plan)
	}
	body = "Welcome to Shamba Smart!\n\n" + planLine +
		"With Shamba Smart you can:\n" +
		"- Get planting recommendations for your farm\n" +
		"- Follow market prices across Kenya\n" +
		"- Share and validate indigenous weather indicators\n\n" +
		"Happy farming!"
	return subject, body
}

func registeredSMS(shortCode string) string {
	return fmt.Sprintf("🌾 Welcome to Shamba Smart!\n\nYou're now registered for alerts.\n\n"+
		ussdShortCodeHint+":\n- Planting advice\n- Market prices\n- Weather forecasts\n\nHappy farming!", shortCode)
}

func weatherAlertSMS(location, alert, shortCode string) string {
	return fmt.Sprintf("🌾 SHAMBA SMART ALERT\n\n📍 %s\n\n%s\n\nDial %s for more info.", location, alert, shortCode)
}

func priceAlertSMS(market string, prices []priceQuote, shortCode string) string {
	lines := make([]string, 0, len(prices))
	for _, p := range prices {
		sign := ""
		if p.Change > 0 {
			sign = "+"
		}
		lines = append(lines, fmt.Sprintf("%s: KES %s (%s%s%%)",
			p.Crop, groupThousands(p.Price), sign, strconv.FormatFloat(p.Change, 'f', -1, 64)))
	}
	return fmt.Sprintf("📊 SHAMBA SMART PRICES\n\n📍 %s Market\n\n%s\n\nDial %s for details.",
		market, strings.Join(lines, "\n"), shortCode)
}

func plantingAdviceSMS(crop, recommendation string, confidence float64, shortCode string) string {
	return fmt.Sprintf("🌱 SHAMBA SMART\n\n%s Planting Advice:\n\n%s\n\nConfidence: %s%%\n\nDial %s for full report.",
		crop, recommendation, strconv.FormatFloat(confidence, 'f', -1, 64), shortCode)
}

// groupThousands formats 3850 as "3,850", keeping up to three decimals
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		if len(frac) > 3 {
			frac = frac[:3]
		}
		out += "." + frac
	}
	return out
}

func stringField(data map[string]any, key, fallback string) string {
	if v, ok := data[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func numberField(data map[string]any, key string, fallback float64) float64 {
	switch v := data[key].(type) {
	case float64:
		if v != 0 {
			return v
		}
	case int:
		if v != 0 {
			return float64(v)
		}
	}
	return fallback
}

// priceQuotes reads data["prices"] as [{crop, price, change}], falling back to
// the sample quotes when it is missing or malformed.
func priceQuotes(data map[string]any) []priceQuote {
	raw, ok := data["prices"].([]any)
	if !ok || len(raw) == 0 {
		return defaultAlertPrices
	}

	quotes := make([]priceQuote, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			return defaultAlertPrices
		}
		crop, ok := entry["crop"].(string)
		if !ok || crop == "" {
			return defaultAlertPrices
		}
		quotes = append(quotes, priceQuote{
			Crop:   crop,
			Price:  numberField(entry, "price", 0),
			Change: numberField(entry, "change", 0),
		})
	}
	return quotes
}
