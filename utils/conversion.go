package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"meddirect/config"
)

type ExchangeRateAPIResponse struct {
	Result string             `json:"result"`
	Base   string             `json:"base_code"`
	Rates  map[string]float64 `json:"conversion_rates"`
}

// fallbackRates is used when no exchange-rate API key is configured.
// Doctor fees are stored in INR; these cover the currencies the payment
// method resolver can hand out.
var fallbackRates = map[string]float64{
	"INR": 1.0,
	"USD": 0.012,
	"EUR": 0.011,
	"GBP": 0.0095,
}

// fetchExchangeRate fetches the INR->target rate using ExchangeRate-API.
func fetchExchangeRate(from, to string) (float64, error) {
	url := fmt.Sprintf("https://v6.exchangerate-api.com/v6/%s/latest/%s", config.AppConfig.ExchangeRateAPIKey, from)

	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var rateResp ExchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&rateResp); err != nil {
		return 0, fmt.Errorf("decoding response failed: %w", err)
	}

	if rateResp.Result != "success" {
		return 0, fmt.Errorf("exchange API returned failure result")
	}

	rate, ok := rateResp.Rates[to]
	if !ok {
		return 0, fmt.Errorf("exchange rate for %s not found", to)
	}
	return rate, nil
}

// ConvertCurrency converts amount between currencies using live rates,
// falling back to the static table when no API key is configured.
func ConvertCurrency(amount float64, fromCurrency, toCurrency string) (float64, error) {
	if fromCurrency == toCurrency {
		return math.Round(amount*100) / 100, nil
	}
	if config.IsPlaceholderCredential(config.AppConfig.ExchangeRateAPIKey) {
		from, okFrom := fallbackRates[fromCurrency]
		to, okTo := fallbackRates[toCurrency]
		if !okFrom || !okTo {
			return 0, fmt.Errorf("no fallback rate for %s->%s", fromCurrency, toCurrency)
		}
		return math.Round(amount/from*to*100) / 100, nil
	}
	rate, err := fetchExchangeRate(fromCurrency, toCurrency)
	if err != nil {
		return 0, err
	}
	converted := amount * rate
	return math.Round(converted*100) / 100, nil
}
