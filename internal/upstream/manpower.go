package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"garment-backend/internal/models"
)

// manpowerData accepts both {"sections": [...]} and a bare array
type manpowerData struct {
	sections []models.ManpowerSection
}

func (m *manpowerData) UnmarshalJSON(b []byte) error {
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &m.sections)
	}
	var summary models.ManpowerSummary
	if err := json.Unmarshal(b, &summary); err != nil {
		return err
	}
	m.sections = summary.Sections
	return nil
}

// ManpowerSummary fetches present/total workers per section for date
func (c *Client) ManpowerSummary(ctx context.Context, date string) ([]models.ManpowerSection, error) {
	var data manpowerData
	if err := c.do(ctx, EndpointManpowerSummary, http.MethodGet, "/api/manpower/summary", dateQuery(date), nil, &data); err != nil {
		return nil, err
	}
	if data.sections == nil {
		return []models.ManpowerSection{}, nil
	}
	return data.sections, nil
}
