package fts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ftscli/internal/config"
	"ftscli/internal/errors"
)

const jsonSuffix = ".json"

// Client fetches FTS resources over HTTP and materializes them as tables.
// Fetches are sequential and blocking; the only tunable is the transport
// timeout from configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new FTS API client
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "fts.client"),
	}
}

// buildURL assembles a resource URL by plain concatenation: base + middle
// part + ".json". Identifiers and country names are passed through verbatim;
// a bad identifier surfaces as an API error at fetch time, not here.
func (c *Client) buildURL(middlePart string) string {
	return c.baseURL + middlePart + jsonSuffix
}

// fetchRecords performs a GET request and decodes the body as a JSON array
// of objects. Numbers are kept as json.Number so amounts round-trip to CSV
// without float formatting drift.
func (c *Client) fetchRecords(ctx context.Context, url string) ([]map[string]interface{}, error) {
	c.logger.DebugContext(ctx, "fetching resource", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to build request for %s", url), err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("GET %s failed", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewNetworkError(
			fmt.Sprintf("GET %s returned status %d", url, resp.StatusCode), nil).
			WithContext("body", string(body))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var records []map[string]interface{}
	if err := decoder.Decode(&records); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid JSON from %s", url), err)
	}

	return records, nil
}

// FetchTable fetches the resource at middlePart and returns it as a table
// conformed to the given schema, rows identified by position.
func (c *Client) FetchTable(ctx context.Context, middlePart string, schema Schema) (*Table, error) {
	records, err := c.fetchRecords(ctx, c.buildURL(middlePart))
	if err != nil {
		return nil, err
	}

	table := tableFromRecords(records, schema)
	c.logger.DebugContext(ctx, "fetched table",
		slog.String("resource", schema.Resource),
		slog.Int("rows", table.Len()))
	return table, nil
}

// FetchTableWithID fetches a resource and promotes its "id" field to the row
// index. Empty results come back unindexed: there is no column to index by.
func (c *Client) FetchTableWithID(ctx context.Context, middlePart string, schema Schema) (*Table, error) {
	table, err := c.FetchTable(ctx, middlePart, schema)
	if err != nil {
		return nil, err
	}
	table.SetIndex("id")
	return table, nil
}

// GroupingOptions configure a funding or pledges report fetch
type GroupingOptions struct {
	// GroupBy selects the report dimension (Donor, Recipient, Sector,
	// Emergency, Appeal, Country, Cluster). Empty keeps the API default.
	GroupBy Dimension
	// Alias, when set, renames the "type" column and promotes it to the row
	// index; the "amount" column is renamed to the resource label.
	Alias string
}

// Dimension is a grouping dimension accepted by the funding and pledges
// endpoints via the GroupBy query parameter.
type Dimension string

const (
	GroupByDonor     Dimension = "Donor"
	GroupByRecipient Dimension = "Recipient"
	GroupBySector    Dimension = "Sector"
	GroupByEmergency Dimension = "Emergency"
	GroupByAppeal    Dimension = "Appeal"
	GroupByCountry   Dimension = "Country"
	GroupByCluster   Dimension = "Cluster"
)

// FetchGrouping fetches a grouping report (funding or pledges) for an appeal.
// The payload of interest is nested one level inside the "grouping" field of
// each top-level record; all grouping sub-arrays are flattened into a single
// table. With an alias set, rows lacking a usable type or amount are skipped
// with a warning rather than aborting the export.
func (c *Client) FetchGrouping(ctx context.Context, resource string, appealID int, opts GroupingOptions) (*Table, error) {
	url := c.buildURL(resource) + "?Appeal=" + fmt.Sprintf("%d", appealID)
	if opts.GroupBy != "" {
		url += "&GroupBy=" + string(opts.GroupBy)
	}

	records, err := c.fetchRecords(ctx, url)
	if err != nil {
		return nil, err
	}

	var flattened []map[string]interface{}
	for i, record := range records {
		nested, ok := record["grouping"].([]interface{})
		if !ok {
			return nil, errors.NewParsingError(
				fmt.Sprintf("%s record %d has no grouping field", resource, i), nil)
		}
		for _, item := range nested {
			row, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.NewParsingError(
					fmt.Sprintf("%s record %d holds a non-object grouping entry", resource, i), nil)
			}
			flattened = append(flattened, row)
		}
	}

	if opts.Alias != "" {
		kept := flattened[:0]
		for i, row := range flattened {
			if row["type"] == nil || row["amount"] == nil {
				c.logger.WarnContext(ctx, "skipping grouping row without type or amount",
					slog.String("resource", resource),
					slog.Int("row", i))
				continue
			}
			kept = append(kept, row)
		}
		flattened = kept
	}

	table := tableFromRecords(flattened, GroupingSchema)

	if opts.Alias != "" {
		table.RenameColumn("type", opts.Alias)
		table.RenameColumn("amount", resource)
		table.SetIndex(opts.Alias)
	}

	c.logger.DebugContext(ctx, "fetched grouping report",
		slog.String("resource", resource),
		slog.Int("appeal_id", appealID),
		slog.Int("rows", table.Len()))
	return table, nil
}
