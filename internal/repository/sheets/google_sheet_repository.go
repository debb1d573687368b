package sheets

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/railfit/internal/config"
)

// Sheet is the row store behind the certificate register.
type Sheet interface {
	AppendRow(ctx context.Context, values []interface{}) error
	Rows(ctx context.Context) ([][]interface{}, error)
}

// SheetClient reads and appends rows of one register range through the Google Sheets API.
type SheetClient struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewSheetClient connects to the register spreadsheet named in cfg.
func NewSheetClient(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SheetClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RegisterRange == "" {
		return nil, fmt.Errorf("register range must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetClient{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.RegisterRange,
		logger:        logger,
	}, nil
}

// AppendRow adds one register row below the existing data.
// Values are stored as typed so document ids keep every digit.
func (c *SheetClient) AppendRow(ctx context.Context, values []interface{}) error {
	payload := &sheetsapi.ValueRange{MajorDimension: "ROWS", Values: [][]interface{}{values}}

	_, err := c.values.Append(c.spreadsheetID, c.sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row into range %s: %w", c.sheetRange, err)
	}

	c.logger.Debug("register row appended", zap.String("range", c.sheetRange))
	return nil
}

// Rows returns the register data rows with any leading header rows removed.
// Cells are read unformatted so numbers edited by hand come back as float64.
func (c *SheetClient) Rows(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.values.Get(c.spreadsheetID, c.sheetRange).
		MajorDimension("ROWS").
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", c.sheetRange, err)
	}

	rows := dropHeader(resp.Values)
	c.logger.Debug("register rows read",
		zap.String("range", c.sheetRange),
		zap.Int("rows", len(rows)),
		zap.Int("header_rows", len(resp.Values)-len(rows)))
	return rows, nil
}

// dropHeader skips rows until the first one whose leading cell is a document id.
func dropHeader(rows [][]interface{}) [][]interface{} {
	for i, row := range rows {
		if len(row) > 0 {
			if _, err := strconv.ParseInt(cellString(row[0]), 10, 64); err == nil {
				return rows[i:]
			}
		}
	}
	return nil
}

// cellString renders an unformatted cell value without exponent notation.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
