// Package equran is a thin client for the equran.id sholat API: the
// canonical province and kabupaten/kota lists and the monthly prayer
// schedule. Consumed read-only.
package equran

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

const DefaultBaseURL = "https://equran.id/api/v2"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL}
}

// Provinces returns the nationwide canonical province list.
func (c *Client) Provinces(ctx context.Context) ([]string, error) {
	var body struct {
		Data []string `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/shalat/provinsi", nil, &body); err != nil {
		return nil, fmt.Errorf("fetch provinces: %w", err)
	}
	return body.Data, nil
}

// Cities returns the canonical kabupaten/kota list scoped to one
// canonical province.
func (c *Client) Cities(ctx context.Context, province string) ([]string, error) {
	payload := map[string]string{"provinsi": province}
	var body struct {
		Data []string `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/shalat/kabkota", payload, &body); err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}
	return body.Data, nil
}

// MonthlySchedule returns every daily schedule of one calendar month
// for a canonical province+city pair.
func (c *Client) MonthlySchedule(ctx context.Context, province, city string, month, year int) (model.MonthlySchedule, error) {
	payload := map[string]any{
		"provinsi": province,
		"kabkota":  city,
		"bulan":    month,
		"tahun":    year,
	}
	var body struct {
		Data struct {
			Jadwal []model.DailySchedule `json:"jadwal"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/shalat", payload, &body); err != nil {
		return nil, fmt.Errorf("fetch monthly schedule: %w", err)
	}
	return body.Data.Jadwal, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reqBody *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
