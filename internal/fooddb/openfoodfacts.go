// Package fooddb looks up packaged food nutrition in the OpenFoodFacts database.
package fooddb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mmynk/nutritrack/internal/models"
)

// SourceOpenFoodFacts identifies products returned by this client.
const SourceOpenFoodFacts = "openfoodfacts"

// DefaultBaseURL is the public OpenFoodFacts API.
const DefaultBaseURL = "https://world.openfoodfacts.org"

const (
	searchPageSize = 20
	kjPerKcal      = 4.184
	maxBodyBytes   = 4 << 20
)

// FoodProduct is a product found in an external food database,
// with nutrition per 100 grams.
type FoodProduct struct {
	ExternalID      string  `json:"externalId"`
	Source          string  `json:"source"`
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
}

// Client queries the OpenFoodFacts HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for baseURL. A zero timeout defaults to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "nutritrack/1.0",
	}
}

// ByBarcode returns the product with the given barcode.
// An unknown barcode is a NotFound error.
func (c *Client) ByBarcode(ctx context.Context, barcode string) (*FoodProduct, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, models.Validationf("barcode must not be empty")
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			return nil, models.Validationf("barcode must contain only digits, got %q", barcode)
		}
	}

	body, err := c.get(ctx, "/api/v2/product/"+barcode+".json", nil)
	if err != nil {
		return nil, err
	}

	if gjson.GetBytes(body, "status").Int() != 1 || !gjson.GetBytes(body, "product").Exists() {
		return nil, models.NotFoundf("no product with barcode %s", barcode)
	}
	product := parseProduct(gjson.GetBytes(body, "product"), barcode)
	slog.Debug("Barcode lookup", "barcode", barcode, "name", product.Name)
	return &product, nil
}

// Search returns products whose name matches the query. No match is an empty slice.
func (c *Client) Search(ctx context.Context, name string) ([]FoodProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Validationf("search name must not be empty")
	}

	q := url.Values{}
	q.Set("search_terms", name)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", fmt.Sprint(searchPageSize))

	body, err := c.get(ctx, "/cgi/search.pl", q)
	if err != nil {
		return nil, err
	}

	products := []FoodProduct{}
	gjson.GetBytes(body, "products").ForEach(func(_, p gjson.Result) bool {
		code := p.Get("code").String()
		if code == "" || productName(p) == "" {
			return true
		}
		products = append(products, parseProduct(p, code))
		return true
	})
	slog.Debug("Food search", "query", name, "results", len(products))
	return products, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("food database request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read food database response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NotFoundf("food database returned 404 for %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food database returned status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("food database returned invalid JSON")
	}
	return body, nil
}

func parseProduct(p gjson.Result, code string) FoodProduct {
	name := productName(p)
	if name == "" {
		name = "Product " + code
	}
	return FoodProduct{
		ExternalID:      code,
		Source:          SourceOpenFoodFacts,
		Name:            name,
		CaloriesPer100g: caloriesPer100g(p.Get("nutriments")),
		ProteinPer100g:  nonNegative(p.Get("nutriments.proteins_100g").Float()),
	}
}

func productName(p gjson.Result) string {
	for _, field := range []string{"product_name", "product_name_en", "generic_name"} {
		if v := strings.TrimSpace(p.Get(field).String()); v != "" {
			return v
		}
	}
	return ""
}

// caloriesPer100g prefers the kcal value and falls back to converting kJ.
func caloriesPer100g(n gjson.Result) float64 {
	if kcal := n.Get("energy-kcal_100g"); kcal.Exists() {
		return nonNegative(kcal.Float())
	}
	if kj := n.Get("energy_100g"); kj.Exists() {
		return nonNegative(kj.Float() / kjPerKcal)
	}
	return 0
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
