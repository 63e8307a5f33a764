package record

// Row maps column name to value. Columns omitted at insert time are absent
// from the map, not null.
type Row map[string]Value

func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Project reduces r to the named keys that are present in it. Requested
// keys the row does not hold are skipped, not errors.
func (r Row) Project(cols []string) Row {
	out := make(Row, len(cols))
	for _, c := range cols {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}
