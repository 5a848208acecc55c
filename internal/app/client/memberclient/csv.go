package memberclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/memberhub/internal/app/system/csvutil"
)

// ImportError is returned when the server rejects rows of an import.
// Nothing was inserted.
type ImportError struct {
	Message string
	Rows    []csvutil.RowError
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		parts = append(parts, r.String())
	}
	if len(parts) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// ExportCSV copies the server's CSV export to w.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+APIPath+"/export.csv", nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return errorFromResponse(res)
	}
	_, err = io.Copy(w, res.Body)
	return err
}

// ImportCSV uploads a member CSV and returns how many members were created.
func (c *Client) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+APIPath+"/import.csv", r)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		var out struct {
			Imported int `json:"imported"`
		}
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			return 0, fmt.Errorf("decode response: %w", err)
		}
		return out.Imported, nil
	case http.StatusBadRequest:
		var body struct {
			Error string             `json:"error"`
			Rows  []csvutil.RowError `json:"rows"`
		}
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		if err := json.Unmarshal(raw, &body); err != nil {
			return 0, &APIError{StatusCode: res.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return 0, &ImportError{Message: body.Error, Rows: body.Rows}
	}
	return 0, errorFromResponse(res)
}
