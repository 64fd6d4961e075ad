package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ayoisaiah/tempo/internal/config"
	"github.com/ayoisaiah/tempo/internal/models"
)

const (
	valueInput   = "RAW"
	insertRows   = "INSERT_ROWS"
	dimensionRow = "ROWS"
	lastColumn   = "E"
)

// sheet identifies one tab of the spreadsheet.
type sheet struct {
	title string
	id    int64
}

// SheetsClient is a sheet store backed by a Google Sheets spreadsheet. Each
// table is a tab whose first row is the header.
type SheetsClient struct {
	srv           *sheets.Service
	sheets        map[Table]sheet
	spreadsheetID string
	timeout       time.Duration
}

// NewSheetsClient authenticates with the service account credentials file
// named in cfg and connects to the configured spreadsheet. Any failure is
// reported as ErrAuth.
func NewSheetsClient(
	ctx context.Context,
	cfg config.StoreConfig,
) (*SheetsClient, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, ErrAuth.Wrap(err)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, ErrAuth.Wrap(err)
	}

	return NewSheetsClientWithOptions(ctx, cfg, option.WithCredentials(creds))
}

// NewSheetsClientWithOptions connects to the configured spreadsheet using
// the given client options and makes sure every table has its header row.
func NewSheetsClientWithOptions(
	ctx context.Context,
	cfg config.StoreConfig,
	opts ...option.ClientOption,
) (*SheetsClient, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, ErrAuth.Wrap(err)
	}

	c := &SheetsClient{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       cfg.Timeout,
		sheets: map[Table]sheet{
			Tasks:    {title: cfg.TasksSheet},
			Sessions: {title: cfg.SessionsSheet},
		},
	}

	if err := c.resolveSheets(ctx); err != nil {
		return nil, ErrAuth.Wrap(err)
	}

	for _, t := range Tables {
		if err := c.ensureHeader(ctx, t); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *SheetsClient) withTimeout(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.timeout)
}

// resolveSheets looks up the numeric id of every configured tab. Missing
// tabs are created.
func (c *SheetsClient) resolveSheets(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}

	found := make(map[string]int64, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			found[s.Properties.Title] = s.Properties.SheetId
		}
	}

	var missing []*sheets.Request

	for _, t := range Tables {
		sh := c.sheets[t]

		id, ok := found[sh.title]
		if ok {
			sh.id = id
			c.sheets[t] = sh

			continue
		}

		missing = append(missing, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sh.title},
			},
		})
	}

	if len(missing) == 0 {
		return nil
	}

	resp, err := c.srv.Spreadsheets.BatchUpdate(
		c.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: missing},
	).Context(ctx).Do()
	if err != nil {
		return err
	}

	for _, r := range resp.Replies {
		if r.AddSheet == nil || r.AddSheet.Properties == nil {
			continue
		}

		p := r.AddSheet.Properties

		for _, t := range Tables {
			if c.sheets[t].title == p.Title {
				c.sheets[t] = sheet{title: p.Title, id: p.SheetId}
			}
		}

		slog.Info("created sheet", slog.String("title", p.Title))
	}

	return nil
}

// ensureHeader writes the header to an empty tab and rejects a tab whose
// first row has different columns.
func (c *SheetsClient) ensureHeader(ctx context.Context, table Table) error {
	header, err := Header(table)
	if err != nil {
		return err
	}

	values, err := c.values(ctx, table, "A1:"+lastColumn+"1")
	if err != nil {
		return c.classify(err)
	}

	if len(values) > 0 && len(values[0]) > 0 {
		got := toRow(values[0])
		if !slices.Equal(got, header) {
			return errHeaderMismatch.Fmt(c.sheets[table].title, got, header)
		}

		return nil
	}

	return c.write(ctx, table, 1, header)
}

func (c *SheetsClient) sheet(table Table) (sheet, error) {
	sh, ok := c.sheets[table]
	if !ok {
		return sheet{}, errUnknownTable.Fmt(table)
	}

	return sh, nil
}

func (c *SheetsClient) values(
	ctx context.Context,
	table Table,
	cells string,
) ([][]any, error) {
	sh, err := c.sheet(table)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vr, err := c.srv.Spreadsheets.Values.Get(
		c.spreadsheetID,
		a1(sh.title, cells),
	).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return vr.Values, nil
}

func (c *SheetsClient) write(
	ctx context.Context,
	table Table,
	rowNum int,
	row models.Row,
) error {
	sh, err := c.sheet(table)
	if err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	cells := fmt.Sprintf("A%d:%s%d", rowNum, lastColumn, rowNum)

	_, err = c.srv.Spreadsheets.Values.Update(
		c.spreadsheetID,
		a1(sh.title, cells),
		&sheets.ValueRange{Values: [][]any{toCells(row)}},
	).ValueInputOption(valueInput).Context(ctx).Do()

	return c.classify(err)
}

// rowNumber returns the 1-based sheet row holding id, or 0.
func (c *SheetsClient) rowNumber(
	ctx context.Context,
	table Table,
	id string,
) (int, error) {
	values, err := c.values(ctx, table, "A:A")
	if err != nil {
		return 0, c.classify(err)
	}

	// skip the header
	for i := 1; i < len(values); i++ {
		if len(values[i]) > 0 && strings.TrimSpace(fmt.Sprint(values[i][0])) == id {
			return i + 1, nil
		}
	}

	return 0, nil
}

func (c *SheetsClient) ReadAll(
	ctx context.Context,
	table Table,
) ([]models.Row, error) {
	values, err := c.values(ctx, table, "A:"+lastColumn)
	if err != nil {
		return nil, c.classify(err)
	}

	if len(values) == 0 {
		return nil, nil
	}

	rows := make([]models.Row, 0, len(values)-1)

	for _, v := range values[1:] {
		row := toRow(v)
		if row.ID() == "" {
			slog.Debug(
				"skipping row without id",
				slog.String("table", string(table)),
				slog.String("row", spew.Sdump(v)),
			)

			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (c *SheetsClient) Append(
	ctx context.Context,
	table Table,
	row models.Row,
) error {
	sh, err := c.sheet(table)
	if err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, err = c.srv.Spreadsheets.Values.Append(
		c.spreadsheetID,
		a1(sh.title, "A:"+lastColumn),
		&sheets.ValueRange{Values: [][]any{toCells(row)}},
	).ValueInputOption(valueInput).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()

	return c.classify(err)
}

func (c *SheetsClient) Update(
	ctx context.Context,
	table Table,
	row models.Row,
) error {
	n, err := c.rowNumber(ctx, table, row.ID())
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrRowNotFound.Fmt(row.ID(), table)
	}

	return c.write(ctx, table, n, row)
}

func (c *SheetsClient) Delete(ctx context.Context, table Table, id string) error {
	n, err := c.rowNumber(ctx, table, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrRowNotFound.Fmt(id, table)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    c.sheets[table].id,
						Dimension:  dimensionRow,
						StartIndex: int64(n - 1),
						EndIndex:   int64(n),
						// StartIndex 0 would be dropped by the JSON encoder
						ForceSendFields: []string{"StartIndex", "SheetId"},
					},
				},
			},
		},
	}

	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).
		Context(ctx).
		Do()

	return c.classify(err)
}

// Close is a no-op; the HTTP client needs no teardown.
func (c *SheetsClient) Close() error {
	return nil
}

// classify marks rejected credentials as ErrAuth.
func (c *SheetsClient) classify(err error) error {
	if err == nil {
		return nil
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) &&
		(gErr.Code == http.StatusUnauthorized ||
			gErr.Code == http.StatusForbidden) {
		return ErrAuth.Wrap(err)
	}

	return err
}

// a1 builds an A1 range for the named sheet, quoting the title.
func a1(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}

func toCells(row models.Row) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}

	return cells
}

func toRow(cells []any) models.Row {
	row := make(models.Row, len(cells))
	for i, v := range cells {
		if v == nil {
			continue
		}

		row[i] = strings.TrimSpace(fmt.Sprint(v))
	}

	return row
}
