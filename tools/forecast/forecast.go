// Package forecast implements the "weather" capability: an N-day outlook
// for a fixed region, one condition word per day, backed by Open-Meteo.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// Provider limit for daily forecasts.
	ProviderMaxDays = 14

	// Classification thresholds.
	rainyDayMM      = 1.0  // >= this much rain in a day -> Rainy
	rainyProbPct    = 60.0 // or precip probability >= this -> Rainy
	sunnyTempMaxC   = 31.0 // hot enough to call Sunny
	sunnyMaxProbPct = 20.0 // with low rain chance
	sunnyMaxMM      = 0.5  // and very little rain
)

// Day is one classified forecast day.
type Day struct {
	Date      string
	Condition string
}

// Client fetches and classifies daily forecasts for one location.
type Client struct {
	latitude  float64
	longitude float64
	timezone  string
	baseURL   string
	logger    *log.Logger
	http      *http.Client
}

// NewClient creates a forecast client for the given coordinates.
func NewClient(latitude, longitude float64, timezone string, logger *log.Logger) *Client {
	return &Client{
		latitude:  latitude,
		longitude: longitude,
		timezone:  timezone,
		baseURL:   defaultBaseURL,
		logger:    logger,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// SetBaseURL overrides the forecast endpoint, used in tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Forecast returns up to days classified rows. Fetch failures degrade to
// "Normal" rows so the capability output keeps its shape.
func (c *Client) Forecast(ctx context.Context, days int) []Day {
	n := days
	if n > ProviderMaxDays {
		c.logger.Printf("requested days=%d capped to provider max=%d", days, ProviderMaxDays)
		n = ProviderMaxDays
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", c.latitude))
	params.Set("longitude", fmt.Sprintf("%g", c.longitude))
	params.Set("timezone", c.timezone)
	params.Set("daily", "temperature_2m_max,precipitation_sum,precipitation_probability_max")
	params.Set("forecast_days", fmt.Sprintf("%d", n))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return c.fallback(days)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("forecast fetch failed: %v", err)
		return c.fallback(days)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("forecast fetch failed: status %d", resp.StatusCode)
		return c.fallback(days)
	}

	var out struct {
		Daily struct {
			Time                        []string   `json:"time"`
			TemperatureMax              []*float64 `json:"temperature_2m_max"`
			PrecipitationSum            []*float64 `json:"precipitation_sum"`
			PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Printf("forecast decode failed: %v", err)
		return c.fallback(days)
	}

	rows := make([]Day, 0, n)
	for i, date := range out.Daily.Time {
		if i >= n {
			break
		}
		rows = append(rows, Day{
			Date: date,
			Condition: classifyDay(
				at(out.Daily.TemperatureMax, i),
				at(out.Daily.PrecipitationSum, i),
				at(out.Daily.PrecipitationProbabilityMax, i),
			),
		})
	}
	return rows
}

// Outlook renders the forecast as "date: condition" lines, the text form the
// weather capability returns to the reasoning engine.
func (c *Client) Outlook(ctx context.Context, days int) string {
	rows := c.Forecast(ctx, days)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s: %s", r.Date, r.Condition)
	}
	return strings.Join(lines, "\n")
}

func (c *Client) fallback(days int) []Day {
	rows := make([]Day, days)
	for i := range rows {
		rows[i] = Day{Date: fmt.Sprintf("day+%d", i+1), Condition: "Normal"}
	}
	return rows
}

// classifyDay buckets one day into Rainy, Sunny or Normal from simple daily
// rules; missing readings fall through to Normal.
func classifyDay(tempMaxC, precipMM, precipProbMax *float64) string {
	if (precipMM != nil && *precipMM >= rainyDayMM) ||
		(precipProbMax != nil && *precipProbMax >= rainyProbPct) {
		return "Rainy"
	}
	if tempMaxC != nil && *tempMaxC >= sunnyTempMaxC &&
		precipProbMax != nil && *precipProbMax <= sunnyMaxProbPct &&
		precipMM != nil && *precipMM <= sunnyMaxMM {
		return "Sunny"
	}
	return "Normal"
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}
