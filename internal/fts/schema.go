package fts

// Schema is the canonical, enumerated column set for one resource type.
// Responses are conformed to it up front so every sub-table of a resource
// shares the same columns, which makes concatenation across appeals or
// emergencies a checked operation instead of a silent assumption.
type Schema struct {
	// Resource is the object-type label used in exported file names
	// (fts_<Resource>.csv) and as the renamed amount column of grouping
	// reports.
	Resource string
	// Columns are the known fields in output order. Fields absent from a
	// record become nil cells; unknown fields are appended after these.
	Columns []string
	// DateColumns hold date strings on the wire and are normalized to
	// timestamps on load.
	DateColumns []string
}

// EmptyIndexed returns a zero-row table shaped like an id-indexed fetch of
// this resource. Used to write a well-formed header-only export when every
// intermediate fetch came back empty.
func (s Schema) EmptyIndexed() *Table {
	columns := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		if col == "id" {
			continue
		}
		columns = append(columns, col)
	}
	return &Table{Columns: columns, IndexName: "id"}
}

var (
	// SectorSchema covers the Sector resource
	SectorSchema = Schema{
		Resource: "sectors",
		Columns:  []string{"id", "name"},
	}

	// CountrySchema covers the Country resource
	CountrySchema = Schema{
		Resource: "countries",
		Columns:  []string{"id", "name", "iso_code_a", "iso_code_b"},
	}

	// OrganizationSchema covers the Organization resource
	OrganizationSchema = Schema{
		Resource: "organizations",
		Columns:  []string{"id", "name", "abbreviation", "type"},
	}

	// EmergencySchema covers Emergency/country and Emergency/year
	EmergencySchema = Schema{
		Resource: "emergencies",
		Columns:  []string{"id", "title", "country", "year", "glide_id"},
	}

	// AppealSchema covers Appeal/country and Appeal/year
	AppealSchema = Schema{
		Resource: "appeals",
		Columns: []string{
			"id", "title", "country", "emergency_id", "year", "type",
			"launch_date", "start_date", "end_date",
			"current_requirements", "funding", "pledges",
		},
		DateColumns: []string{"start_date", "end_date", "launch_date"},
	}

	// ProjectSchema covers Project/appeal
	ProjectSchema = Schema{
		Resource: "projects",
		Columns: []string{
			"id", "code", "title", "appeal_id", "organisation", "cluster",
			"priority", "original_requirements", "current_requirements",
			"funding", "end_date", "last_updated_datetime",
		},
		DateColumns: []string{"end_date", "last_updated_datetime"},
	}

	// ContributionSchema covers Contribution/appeal and Contribution/emergency
	ContributionSchema = Schema{
		Resource: "contributions",
		Columns: []string{
			"id", "appeal_id", "emergency_id", "donor", "recipient",
			"project_code", "amount", "status", "decision_date",
		},
		DateColumns: []string{"decision_date"},
	}

	// ClusterSchema covers Cluster/appeal. The payload carries no id, so
	// cluster tables stay positionally indexed.
	ClusterSchema = Schema{
		Resource: "clusters",
		Columns:  []string{"name", "current_requirements", "funding"},
	}

	// GroupingSchema covers the rows nested inside the "grouping" field of
	// funding and pledges reports.
	GroupingSchema = Schema{
		Resource: "grouping",
		Columns:  []string{"type", "amount"},
	}
)
