package recordread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Columns that must be present for a batch to be loadable at all. The
// remaining encounter columns may be absent; their values load as NULL or
// cause per-row skips downstream.
var requiredColumns = []string{
	"treatment_id",
	"patient_id",
	"provider_id",
	"disease_id",
	"country",
	"state",
	"city",
}

func validateColumns(cols []string) error {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateParquetSchema(schema *parquet.Schema) error {
	cols := make([]string, 0, len(schema.Fields()))
	for _, field := range schema.Fields() {
		cols = append(cols, strings.ToLower(field.Name()))
	}
	return validateColumns(cols)
}
