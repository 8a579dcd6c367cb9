package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

// Country is the slice of the restcountries.com payload signup cares
// about: a display name and the currency codes in circulation.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// Client fetches the country/currency list used to derive a company's base
// currency at signup.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// List returns all countries that declare at least one currency.
func (c *Client) List(ctx context.Context) ([]Country, error) {
	url := c.baseURL + "/all?fields=name,currencies"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("country lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country lookup: unexpected status %d", resp.StatusCode)
	}

	var all []Country
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("country lookup: decode: %w", err)
	}

	countries := all[:0]
	for _, country := range all {
		if len(country.Currencies) > 0 {
			countries = append(countries, country)
		}
	}
	return countries, nil
}

// CurrencyFor resolves a country name to its first declared currency code,
// matching the signup form's behavior.
func (c *Client) CurrencyFor(ctx context.Context, countryName string) (string, error) {
	countries, err := c.List(ctx)
	if err != nil {
		return "", err
	}
	for _, country := range countries {
		if country.Name.Common == countryName || country.Name.Official == countryName {
			for code := range country.Currencies {
				return code, nil
			}
		}
	}
	return "", fmt.Errorf("no currency found for country %q", countryName)
}
