package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"xostore-backend/models"
)

const (
	insightsEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	insightsModel    = "gemini-2.5-flash"

	// Layanan ini murni penasihat; tanpa kredensial atau saat gagal, halaman
	// tetap jalan dengan pesan statis.
	insightsNotConfigured = "AI insights are not configured. Set GEMINI_API_KEY to enable them."
	insightsUnavailable   = "Failed to generate AI insights. Please try again later."
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// InsightsService meminta analisis penjualan teks-bebas ke Gemini.
type InsightsService struct {
	client *resty.Client
	apiKey string
}

// NewInsightsService membuat InsightsService. apiKey boleh kosong.
func NewInsightsService(apiKey string) *InsightsService {
	return &InsightsService{
		client: resty.New().SetTimeout(30 * time.Second),
		apiKey: apiKey,
	}
}

// GenerateSalesInsights mengembalikan analisis bullet-point dari data produk
// dan penjualan (maksimal 10 penjualan terbaru). Tidak pernah mengembalikan
// error ke pemanggil: kegagalan diturunkan menjadi pesan statis.
func (s *InsightsService) GenerateSalesInsights(ctx context.Context, products []models.Product, sales []models.Sale) string {
	if s.apiKey == "" {
		return insightsNotConfigured
	}

	if len(sales) > 10 {
		sales = sales[:10]
	}

	productJSON, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Printf("insights: marshaling products: %v", err)
		return insightsUnavailable
	}
	salesJSON, err := json.MarshalIndent(sales, "", "  ")
	if err != nil {
		log.Printf("insights: marshaling sales: %v", err)
		return insightsUnavailable
	}

	prompt := fmt.Sprintf(`Analyze the following sales and product data for a retail store.
Provide actionable insights for the business owner.

- Identify the top-selling products by revenue.
- Identify products with low stock that are selling well.
- Suggest a sales trend based on the recent sales data.
- Propose a simple marketing or promotion idea based on the data.

Keep the analysis concise and easy to read, using bullet points.

**Product Data (Inventory):**
%s

**Recent Sales Data:**
%s`, productJSON, salesJSON)

	body := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}

	var result geminiResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(body).
		SetResult(&result).
		Post(fmt.Sprintf(insightsEndpoint, insightsModel))
	if err != nil {
		log.Printf("insights: calling Gemini: %v", err)
		return insightsUnavailable
	}
	if resp.IsError() {
		log.Printf("insights: Gemini returned %s", resp.Status())
		return insightsUnavailable
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return insightsUnavailable
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String()
}
