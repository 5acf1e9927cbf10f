package fts

import (
	"context"
	"strconv"
)

// Sectors fetches the global sector list, indexed by id
func (c *Client) Sectors(ctx context.Context) (*Table, error) {
	return c.FetchTableWithID(ctx, "Sector", SectorSchema)
}

// Countries fetches the global country list, indexed by id
func (c *Client) Countries(ctx context.Context) (*Table, error) {
	return c.FetchTableWithID(ctx, "Country", CountrySchema)
}

// Organizations fetches the global organization list, indexed by id
func (c *Client) Organizations(ctx context.Context) (*Table, error) {
	return c.FetchTableWithID(ctx, "Organization", OrganizationSchema)
}

// EmergenciesForCountry fetches emergencies for a country.
// Accepts both names ("Slovakia") and ISO country codes ("SVK").
func (c *Client) EmergenciesForCountry(ctx context.Context, country string) (*Table, error) {
	return c.FetchTableWithID(ctx, "Emergency/country/"+country, EmergencySchema)
}

// EmergenciesForYear fetches emergencies for a year
func (c *Client) EmergenciesForYear(ctx context.Context, year int) (*Table, error) {
	return c.FetchTableWithID(ctx, "Emergency/year/"+strconv.Itoa(year), EmergencySchema)
}

// fetchAppeals fetches an appeal list and normalizes its date columns
func (c *Client) fetchAppeals(ctx context.Context, middlePart string) (*Table, error) {
	table, err := c.FetchTableWithID(ctx, middlePart, AppealSchema)
	if err != nil {
		return nil, err
	}
	if err := NormalizeDates(table, AppealSchema.DateColumns); err != nil {
		return nil, err
	}
	return table, nil
}

// AppealsForCountry fetches appeals for a country.
// Accepts both names ("Slovakia") and ISO country codes ("SVK").
func (c *Client) AppealsForCountry(ctx context.Context, country string) (*Table, error) {
	return c.fetchAppeals(ctx, "Appeal/country/"+country)
}

// AppealsForYear fetches appeals for a year
func (c *Client) AppealsForYear(ctx context.Context, year int) (*Table, error) {
	return c.fetchAppeals(ctx, "Appeal/year/"+strconv.Itoa(year))
}

// ProjectsForAppeal fetches the projects of an appeal
func (c *Client) ProjectsForAppeal(ctx context.Context, appealID int) (*Table, error) {
	table, err := c.FetchTableWithID(ctx, "Project/appeal/"+strconv.Itoa(appealID), ProjectSchema)
	if err != nil {
		return nil, err
	}
	if err := NormalizeDates(table, ProjectSchema.DateColumns); err != nil {
		return nil, err
	}
	return table, nil
}

// ClustersForAppeal fetches the clusters of an appeal.
// The payload carries no id, so rows stay positionally indexed.
func (c *Client) ClustersForAppeal(ctx context.Context, appealID int) (*Table, error) {
	return c.FetchTable(ctx, "Cluster/appeal/"+strconv.Itoa(appealID), ClusterSchema)
}

// fetchContributions fetches a contribution list and normalizes decision_date
func (c *Client) fetchContributions(ctx context.Context, middlePart string) (*Table, error) {
	table, err := c.FetchTableWithID(ctx, middlePart, ContributionSchema)
	if err != nil {
		return nil, err
	}
	if err := NormalizeDates(table, ContributionSchema.DateColumns); err != nil {
		return nil, err
	}
	return table, nil
}

// ContributionsForAppeal fetches the contributions of an appeal
func (c *Client) ContributionsForAppeal(ctx context.Context, appealID int) (*Table, error) {
	return c.fetchContributions(ctx, "Contribution/appeal/"+strconv.Itoa(appealID))
}

// ContributionsForEmergency fetches the contributions of an emergency
func (c *Client) ContributionsForEmergency(ctx context.Context, emergencyID int) (*Table, error) {
	return c.fetchContributions(ctx, "Contribution/emergency/"+strconv.Itoa(emergencyID))
}

// Funding fetches the funding grouping report for an appeal: committed or
// contributed funds, including carry-over from previous years.
func (c *Client) Funding(ctx context.Context, appealID int, opts GroupingOptions) (*Table, error) {
	return c.FetchGrouping(ctx, "funding", appealID, opts)
}

// Pledges fetches the pledges grouping report for an appeal: uncommitted
// pledges only, not funding that has already processed to the commitment or
// contribution stage.
func (c *Client) Pledges(ctx context.Context, appealID int, opts GroupingOptions) (*Table, error) {
	return c.FetchGrouping(ctx, "pledges", appealID, opts)
}
