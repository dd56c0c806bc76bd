package upstream

import (
	"context"
	"net/http"

	"garment-backend/internal/models"
)

// Overtime fetches the stored overtime sheet for date. A date with nothing
// stored yields an empty sheet, not an error.
func (c *Client) Overtime(ctx context.Context, date string) (models.OvertimeSheet, error) {
	sheet := models.OvertimeSheet{Date: date}
	if err := c.do(ctx, EndpointOvertimeGet, http.MethodGet, "/api/overtime", dateQuery(date), nil, &sheet); err != nil {
		return models.OvertimeSheet{}, err
	}
	if sheet.Records == nil {
		sheet.Records = []models.OvertimeRecord{}
	}
	sheet.Date = date
	return sheet, nil
}

// SaveOvertime persists the full overtime record set of one date
func (c *Client) SaveOvertime(ctx context.Context, sheet models.OvertimeSheet) error {
	return c.do(ctx, EndpointOvertimeSave, http.MethodPost, "/api/overtime", nil, sheet, nil)
}

// Salary fetches the stored salary sheet for date
func (c *Client) Salary(ctx context.Context, date string) (models.SalarySheet, error) {
	sheet := models.SalarySheet{Date: date}
	if err := c.do(ctx, EndpointSalaryGet, http.MethodGet, "/api/salary", dateQuery(date), nil, &sheet); err != nil {
		return models.SalarySheet{}, err
	}
	if sheet.Records == nil {
		sheet.Records = []models.SalaryRecord{}
	}
	sheet.Date = date
	return sheet, nil
}

// SaveSalary persists the full salary record set of one date
func (c *Client) SaveSalary(ctx context.Context, sheet models.SalarySheet) error {
	return c.do(ctx, EndpointSalarySave, http.MethodPost, "/api/salary", nil, sheet, nil)
}
