package payment

import "fmt"

var editable = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CalculatedColumns))
	for _, c := range CalculatedColumns {
		m[c] = struct{}{}
	}
	return m
}()

// IsEditable reports whether a user may change the column.
func IsEditable(column string) bool {
	_, ok := editable[column]
	return ok
}

// UpdateRecord writes values into the calculated columns of records[index].
// The whole edit is validated first; a rejected edit leaves the record as it was.
func UpdateRecord(records []Record, index int, values map[string]string) error {
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: index %d of %d", ErrRecordNotFound, index, len(records))
	}
	for col := range values {
		if !IsEditable(col) {
			return fmt.Errorf("%w: %q", ErrColumnNotEditable, col)
		}
	}

	rec := records[index]
	if rec == nil {
		rec = make(Record)
		records[index] = rec
	}
	for col, v := range values {
		rec[col] = v
	}
	return nil
}
