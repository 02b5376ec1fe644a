package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
	"fintrack/internal/log"
	ports "fintrack/internal/sheets"
)

// Column layout of the ledger sheet, A through H.
const (
	colRecordID = iota
	colUserID
	colKind
	colDate
	colDescription
	colCategory
	colSubcategory
	colAmount
	numCols
)

var header = []any{"ID", "User", "Kind", "Date", "Description", "Category", "Subcategory", "Amount"}

type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON []byte
	// ClientOptions replace the credential options, e.g. to point the
	// client at a fake endpoint.
	ClientOptions []goption.ClientOption
	Logger        *log.Logger
}

// Client exports ledger rows to a single sheet of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger

	mu      sync.Mutex
	sheetID *int64
}

var _ ports.LedgerSink = (*Client)(nil)

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(opts.SheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	clientOpts := opts.ClientOptions
	if len(clientOpts) == 0 {
		if len(opts.CredentialsJSON) == 0 {
			return nil, errors.New("missing service account credentials")
		}
		clientOpts = []goption.ClientOption{
			goption.WithCredentialsJSON(opts.CredentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsScope),
		}
	}

	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     opts.SheetName,
		logger:        logger.WithComponent(log.ComponentSheets),
	}, nil
}

// LoadCredentials returns inline JSON when set, else the contents of file.
func LoadCredentials(inlineJSON, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inlineJSON) != "":
		return []byte(inlineJSON), nil
	case strings.TrimSpace(file) != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

func (c *Client) fullRange() string {
	return fmt.Sprintf("%s!A:H", c.sheetName)
}

func (c *Client) readValues(ctx context.Context) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.fullRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.fullRange(), err)
	}
	return resp.Values, nil
}

// Append writes row at the end of the sheet. A row already carrying the
// record id is left alone so redelivered events do not duplicate data.
func (c *Client) Append(ctx context.Context, row ports.LedgerRow) error {
	if row.RecordID == "" {
		return errors.New("ledger row without record id")
	}

	values, err := c.readValues(ctx)
	if err != nil {
		return err
	}
	if len(matchingRows(values, colRecordID, row.RecordID)) > 0 {
		c.logger.DebugContext(ctx, "Ledger row already exported", log.FieldRecordID, row.RecordID)
		return nil
	}

	data := [][]any{rowValues(row)}
	if len(values) == 0 {
		data = append([][]any{header}, data...)
	}

	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.fullRange(), &gsheet.ValueRange{Values: data}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	c.logger.InfoContext(ctx, "Exported ledger row",
		log.FieldRecordID, row.RecordID,
		log.FieldUserID, row.UserID,
		log.FieldAmount, row.Amount.Cents)
	return nil
}

func (c *Client) DeleteRecord(ctx context.Context, recordID string) error {
	return c.deleteWhere(ctx, colRecordID, recordID)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.deleteWhere(ctx, colUserID, userID)
}

func (c *Client) deleteWhere(ctx context.Context, col int, value string) error {
	values, err := c.readValues(ctx)
	if err != nil {
		return err
	}
	rows := matchingRows(values, col, value)
	if len(rows) == 0 {
		return nil
	}

	sheetID, err := c.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{Requests: deleteRequests(sheetID, rows)}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete rows from %s: %w", c.sheetName, err)
	}
	c.logger.InfoContext(ctx, "Deleted ledger rows", "rows", len(rows), "match", value)
	return nil
}

// resolveSheetID looks up the numeric id of the ledger sheet once.
func (c *Client) resolveSheetID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetID != nil {
		return *c.sheetID, nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			id := sh.Properties.SheetId
			c.sheetID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}

// ListRows returns the exported rows of userID, skipping the header and
// rows that do not parse.
func (c *Client) ListRows(ctx context.Context, userID string) ([]ports.LedgerRow, error) {
	values, err := c.readValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.LedgerRow, 0)
	for _, v := range values {
		row, ok := parseRow(toStrings(v))
		if !ok || row.UserID != userID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func rowValues(r ports.LedgerRow) []any {
	return []any{
		r.RecordID,
		r.UserID,
		r.Kind,
		r.Date.String(),
		r.Description,
		r.Category,
		r.Subcategory,
		r.Amount.String(),
	}
}

func parseRow(cols []string) (ports.LedgerRow, bool) {
	if len(cols) < numCols {
		return ports.LedgerRow{}, false
	}
	if cols[colKind] != ports.KindExpense && cols[colKind] != ports.KindIncome {
		return ports.LedgerRow{}, false
	}
	amount, err := core.ParseAmount(cols[colAmount])
	if err != nil {
		return ports.LedgerRow{}, false
	}
	date, _ := core.ParseDate(cols[colDate])
	return ports.LedgerRow{
		RecordID:    cols[colRecordID],
		UserID:      cols[colUserID],
		Kind:        cols[colKind],
		Date:        date,
		Description: cols[colDescription],
		Category:    cols[colCategory],
		Subcategory: cols[colSubcategory],
		Amount:      amount,
	}, true
}

// matchingRows returns the zero-based indices of rows whose column col
// equals value.
func matchingRows(values [][]any, col int, value string) []int {
	var out []int
	for i, row := range values {
		if col < len(row) && strings.TrimSpace(fmt.Sprint(row[col])) == value {
			out = append(out, i)
		}
	}
	return out
}

// deleteRequests deletes rows bottom-up so earlier deletions do not shift
// the indices of later ones.
func deleteRequests(sheetID int64, rows []int) []*gsheet.Request {
	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	reqs := make([]*gsheet.Request, 0, len(sorted))
	for _, r := range sorted {
		reqs = append(reqs, &gsheet.Request{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(r),
					EndIndex:        int64(r + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		})
	}
	return reqs
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
