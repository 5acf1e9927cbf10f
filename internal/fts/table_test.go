package fts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFromRecords_SchemaOrderAndMissingFields(t *testing.T) {
	records := []map[string]interface{}{
		{"id": json.Number("1"), "name": "Agriculture"},
		{"id": json.Number("2")},
	}

	table := tableFromRecords(records, SectorSchema)

	assert.Equal(t, []string{"id", "name"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Agriculture", table.Rows[0][1])
	assert.Nil(t, table.Rows[1][1])
}

func TestTableFromRecords_UnknownKeysAppendedSorted(t *testing.T) {
	records := []map[string]interface{}{
		{"id": json.Number("1"), "name": "Chad", "zebra": "z", "alpha": "a"},
	}

	table := tableFromRecords(records, SectorSchema)

	assert.Equal(t, []string{"id", "name", "alpha", "zebra"}, table.Columns)
}

func TestSetIndex_PromotesColumn(t *testing.T) {
	records := []map[string]interface{}{
		{"id": json.Number("10"), "name": "first"},
		{"id": json.Number("20"), "name": "second"},
	}
	table := tableFromRecords(records, SectorSchema)

	table.SetIndex("id")

	assert.Equal(t, "id", table.IndexName)
	assert.Equal(t, []interface{}{json.Number("10"), json.Number("20")}, table.Index)
	assert.Equal(t, []string{"name"}, table.Columns)
	assert.Equal(t, []interface{}{"first"}, table.Rows[0])

	_, present := table.ColumnIndex("id")
	assert.False(t, present)
}

func TestSetIndex_EmptyTableIsNoOp(t *testing.T) {
	table := tableFromRecords(nil, SectorSchema)

	table.SetIndex("id")

	assert.True(t, table.IsEmpty())
	assert.Empty(t, table.IndexName)
	assert.Nil(t, table.Index)
}

func TestSetIndex_MissingColumnIsNoOp(t *testing.T) {
	records := []map[string]interface{}{{"name": "no id here"}}
	table := tableFromRecords(records, Schema{Resource: "clusters", Columns: []string{"name"}})

	table.SetIndex("id")

	assert.Empty(t, table.IndexName)
	assert.Equal(t, []string{"name"}, table.Columns)
}

func TestColumn(t *testing.T) {
	records := []map[string]interface{}{
		{"id": json.Number("1"), "name": "a"},
		{"id": json.Number("2"), "name": "b"},
	}
	table := tableFromRecords(records, SectorSchema)

	values, ok := table.Column("name")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"a", "b"}, values)

	_, ok = table.Column("missing")
	assert.False(t, ok)
}

func TestConcat_PreservesOrder(t *testing.T) {
	first := tableFromRecords([]map[string]interface{}{
		{"id": json.Number("1"), "name": "a"},
		{"id": json.Number("2"), "name": "b"},
	}, SectorSchema)
	first.SetIndex("id")

	second := tableFromRecords([]map[string]interface{}{
		{"id": json.Number("3"), "name": "c"},
	}, SectorSchema)
	second.SetIndex("id")

	combined, err := Concat([]*Table{first, second})
	require.NoError(t, err)

	assert.Equal(t, 3, combined.Len())
	assert.Equal(t, []interface{}{json.Number("1"), json.Number("2"), json.Number("3")}, combined.Index)
	assert.Equal(t, "id", combined.IndexName)
	assert.Equal(t, []string{"name"}, combined.Columns)
}

func TestConcat_RejectsSchemaMismatch(t *testing.T) {
	first := tableFromRecords([]map[string]interface{}{{"id": json.Number("1"), "name": "a"}}, SectorSchema)
	second := tableFromRecords([]map[string]interface{}{{"name": "b"}}, Schema{Resource: "clusters", Columns: []string{"name"}})

	_, err := Concat([]*Table{first, second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
}

func TestConcat_RejectsZeroTables(t *testing.T) {
	_, err := Concat(nil)
	require.Error(t, err)
}

func TestFilterEmpty(t *testing.T) {
	empty := tableFromRecords(nil, SectorSchema)
	full := tableFromRecords([]map[string]interface{}{{"id": json.Number("1")}}, SectorSchema)

	kept := FilterEmpty([]*Table{empty, full, empty})

	require.Len(t, kept, 1)
	assert.Same(t, full, kept[0])
}

func TestRenameColumn(t *testing.T) {
	table := tableFromRecords([]map[string]interface{}{
		{"type": "A", "amount": json.Number("5")},
	}, GroupingSchema)

	table.RenameColumn("type", "donor")
	table.RenameColumn("missing", "whatever")

	assert.Equal(t, []string{"donor", "amount"}, table.Columns)
}
