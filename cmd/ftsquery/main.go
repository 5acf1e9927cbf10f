// Command ftsquery performs one ad hoc fetch against the FTS API and prints
// the result as CSV on stdout. Useful for spot-checking what an export run
// would see for a given country, year or appeal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ftscli/internal/config"
	"ftscli/internal/exporter"
	"ftscli/internal/fts"
	"ftscli/internal/infrastructure"
)

func main() {
	entity := flag.String("entity", "", "entity to fetch: sectors | countries | organizations | emergencies | appeals | projects | clusters | contributions | funding | pledges")
	country := flag.String("country", "", "country code or name (emergencies, appeals)")
	year := flag.Int("year", 0, "year (emergencies, appeals)")
	appeal := flag.Int("appeal", 0, "appeal id (projects, clusters, contributions, funding, pledges)")
	emergency := flag.Int("emergency", 0, "emergency id (contributions)")
	groupBy := flag.String("group-by", "", "grouping dimension (funding, pledges): Donor | Recipient | Sector | Emergency | Appeal | Country | Cluster")
	alias := flag.String("alias", "", "alias for the grouping type column (funding, pledges)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	// keep stdout clean for the CSV payload
	cfg.Logging.Level = "warn"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := fts.NewClient(cfg.API, logger)

	table, err := fetch(ctx, client, *entity, *country, *year, *appeal, *emergency, *groupBy, *alias)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.Write(os.Stdout, table, exporter.WriteOptions{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fetch(ctx context.Context, client *fts.Client, entity, country string, year, appeal, emergency int, groupBy, alias string) (*fts.Table, error) {
	opts := fts.GroupingOptions{GroupBy: fts.Dimension(groupBy), Alias: alias}

	switch entity {
	case "sectors":
		return client.Sectors(ctx)
	case "countries":
		return client.Countries(ctx)
	case "organizations":
		return client.Organizations(ctx)
	case "emergencies":
		if country != "" {
			return client.EmergenciesForCountry(ctx, country)
		}
		if year != 0 {
			return client.EmergenciesForYear(ctx, year)
		}
		return nil, fmt.Errorf("emergencies needs -country or -year")
	case "appeals":
		if country != "" {
			return client.AppealsForCountry(ctx, country)
		}
		if year != 0 {
			return client.AppealsForYear(ctx, year)
		}
		return nil, fmt.Errorf("appeals needs -country or -year")
	case "projects":
		if appeal == 0 {
			return nil, fmt.Errorf("projects needs -appeal")
		}
		return client.ProjectsForAppeal(ctx, appeal)
	case "clusters":
		if appeal == 0 {
			return nil, fmt.Errorf("clusters needs -appeal")
		}
		return client.ClustersForAppeal(ctx, appeal)
	case "contributions":
		if appeal != 0 {
			return client.ContributionsForAppeal(ctx, appeal)
		}
		if emergency != 0 {
			return client.ContributionsForEmergency(ctx, emergency)
		}
		return nil, fmt.Errorf("contributions needs -appeal or -emergency")
	case "funding":
		if appeal == 0 {
			return nil, fmt.Errorf("funding needs -appeal")
		}
		return client.Funding(ctx, appeal, opts)
	case "pledges":
		if appeal == 0 {
			return nil, fmt.Errorf("pledges needs -appeal")
		}
		return client.Pledges(ctx, appeal, opts)
	case "":
		return nil, fmt.Errorf("-entity is required")
	default:
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
}
