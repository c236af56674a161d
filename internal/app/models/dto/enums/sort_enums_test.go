package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortDirection("DESC", SortAsc))
	assert.Equal(t, SortAsc, ParseSortDirection("asc", SortDesc))
	assert.Equal(t, SortDesc, ParseSortDirection("sideways", SortDesc))
	assert.Equal(t, SortAsc, ParseSortDirection("", SortAsc))
	assert.Equal(t, "DESC", SortDesc.SQL())
	assert.Equal(t, "ASC", SortAsc.SQL())
}

func TestExportFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ExportPDF.ContentType())
	assert.Contains(t, ExportXLSX.ContentType(), "spreadsheetml")
}
