package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"ftscli/internal/config"
	"ftscli/internal/errors"
	"ftscli/internal/fts"
)

// Options configure one export run. Entry points fill this from flags and
// configuration instead of baking country lists into the pipeline.
type Options struct {
	OutputDir string
	Countries []string
	// Workbook additionally bundles each country's tables into one XLSX file
	Workbook bool
}

// Producer orchestrates export runs: it fetches tables through the FTS
// client and writes them under the output tree. Fetches run strictly one at
// a time and any failure aborts the run.
type Producer struct {
	client   *fts.Client
	writer   *CSVWriter
	workbook *WorkbookWriter
	paths    *config.Paths
	opts     Options
	logger   *slog.Logger
}

// NewProducer creates a producer for the given client and run options
func NewProducer(client *fts.Client, opts Options, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		client:   client,
		writer:   NewCSVWriter(logger),
		workbook: NewWorkbookWriter(logger),
		paths:    config.NewPaths(opts.OutputDir),
		opts:     opts,
		logger:   logger.With("component", "exporter.producer"),
	}
}

// Run produces the global CSVs followed by one CSV set per configured country
func (p *Producer) Run(ctx context.Context) error {
	if err := p.paths.EnsureDirectories(); err != nil {
		return errors.NewStorageError("failed to prepare output tree", err)
	}

	if err := p.ProduceGlobalCSVs(ctx); err != nil {
		return err
	}

	for _, country := range p.opts.Countries {
		if err := p.ProduceCountryCSVs(ctx, country); err != nil {
			return fmt.Errorf("export for country %s failed: %w", country, err)
		}
	}

	p.logger.InfoContext(ctx, "export run complete",
		slog.Int("countries", len(p.opts.Countries)))
	return nil
}

// ProduceGlobalCSVs writes the sector, country and organization lists
func (p *Producer) ProduceGlobalCSVs(ctx context.Context) error {
	outputDir := p.paths.GlobalDir

	sectors, err := p.client.Sectors(ctx)
	if err != nil {
		return err
	}
	if err := p.writeCSV(outputDir, "sectors", "", sectors); err != nil {
		return err
	}

	countries, err := p.client.Countries(ctx)
	if err != nil {
		return err
	}
	if err := p.writeCSV(outputDir, "countries", "", countries); err != nil {
		return err
	}

	organizations, err := p.client.Organizations(ctx)
	if err != nil {
		return err
	}
	return p.writeCSV(outputDir, "organizations", "", organizations)
}

// ProduceCountryCSVs writes one country's emergencies, appeals, projects and
// contributions under its per-country directory.
func (p *Producer) ProduceCountryCSVs(ctx context.Context, country string) error {
	outputDir, err := p.paths.EnsureCountryDir(country)
	if err != nil {
		return errors.NewStorageError("failed to prepare country directory", err)
	}

	emergencies, err := p.client.EmergenciesForCountry(ctx, country)
	if err != nil {
		return err
	}
	if err := p.writeCSV(outputDir, "emergencies", country, emergencies); err != nil {
		return err
	}

	appeals, err := p.client.AppealsForCountry(ctx, country)
	if err != nil {
		return err
	}
	if err := p.writeCSV(outputDir, "appeals", country, appeals); err != nil {
		return err
	}

	projects, err := p.produceProjectsCSV(ctx, outputDir, country)
	if err != nil {
		return err
	}

	contributions, err := p.produceContributionsCSV(ctx, outputDir, country)
	if err != nil {
		return err
	}

	if p.opts.Workbook {
		sheets := []Sheet{
			{Name: "emergencies", Table: emergencies},
			{Name: "appeals", Table: appeals},
			{Name: "projects", Table: projects},
			{Name: "contributions", Table: contributions},
		}
		path := config.BuildWorkbookPath(outputDir, country)
		if err := p.workbook.WriteWorkbook(path, sheets); err != nil {
			return err
		}
	}

	return nil
}

// produceProjectsCSV gathers the projects of every appeal of the country
// into a single table. The appeal list is refetched here so the producers
// stay independent of each other.
func (p *Producer) produceProjectsCSV(ctx context.Context, outputDir, country string) (*fts.Table, error) {
	appeals, err := p.client.AppealsForCountry(ctx, country)
	if err != nil {
		return nil, err
	}

	appealIDs, err := indexIDs(appeals)
	if err != nil {
		return nil, err
	}

	var projectTables []*fts.Table
	for _, appealID := range appealIDs {
		projects, err := p.client.ProjectsForAppeal(ctx, appealID)
		if err != nil {
			return nil, err
		}
		projectTables = append(projectTables, projects)
	}

	combined, err := p.combine(projectTables, fts.ProjectSchema)
	if err != nil {
		return nil, err
	}
	if err := p.writeCSV(outputDir, "projects", country, combined); err != nil {
		return nil, err
	}
	return combined, nil
}

// produceContributionsCSV gathers the contributions of every emergency of
// the country, which captures all of its appeals as well.
func (p *Producer) produceContributionsCSV(ctx context.Context, outputDir, country string) (*fts.Table, error) {
	emergencies, err := p.client.EmergenciesForCountry(ctx, country)
	if err != nil {
		return nil, err
	}

	emergencyIDs, err := indexIDs(emergencies)
	if err != nil {
		return nil, err
	}

	var contributionTables []*fts.Table
	for _, emergencyID := range emergencyIDs {
		contributions, err := p.client.ContributionsForEmergency(ctx, emergencyID)
		if err != nil {
			return nil, err
		}
		contributionTables = append(contributionTables, contributions)
	}

	combined, err := p.combine(contributionTables, fts.ContributionSchema)
	if err != nil {
		return nil, err
	}
	if err := p.writeCSV(outputDir, "contributions", country, combined); err != nil {
		return nil, err
	}
	return combined, nil
}

// combine discards empty intermediate tables and concatenates the rest,
// preserving fetch order. When nothing survives the filter it falls back to
// a header-only table so the export still yields a well-formed file.
func (p *Producer) combine(tables []*fts.Table, schema fts.Schema) (*fts.Table, error) {
	nonEmpty := fts.FilterEmpty(tables)
	if len(nonEmpty) == 0 {
		return schema.EmptyIndexed(), nil
	}
	return fts.Concat(nonEmpty)
}

func (p *Producer) writeCSV(outputDir, objectType, country string, table *fts.Table) error {
	path := config.BuildCSVPath(outputDir, objectType, country)
	return p.writer.WriteTable(path, table, WriteOptions{BOMPrefix: false})
}

// indexIDs converts a table's promoted index values to ints for use in
// follow-up fetch paths. Empty tables yield no ids.
func indexIDs(table *fts.Table) ([]int, error) {
	ids := make([]int, 0, len(table.Index))
	for _, value := range table.Index {
		switch v := value.(type) {
		case json.Number:
			id, err := v.Int64()
			if err != nil {
				return nil, errors.NewParsingError(fmt.Sprintf("non-integer id %q", v), err)
			}
			ids = append(ids, int(id))
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.NewParsingError(fmt.Sprintf("non-integer id %q", v), err)
			}
			ids = append(ids, id)
		default:
			return nil, errors.NewParsingError(fmt.Sprintf("unsupported id value %v", v), nil)
		}
	}
	return ids, nil
}
