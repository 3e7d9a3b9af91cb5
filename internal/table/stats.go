package table

import "unicode/utf8"

// ColumnStat summarizes one column for inspection output.
type ColumnStat struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	MaxWidth int    `json:"max_width" yaml:"max_width"`
	Empty    int    `json:"empty" yaml:"empty"`
}

// Stats summarizes a table for inspection output.
type Stats struct {
	Rows    int          `json:"rows" yaml:"rows"`
	Cols    int          `json:"columns" yaml:"columns"`
	ColStat []ColumnStat `json:"column_stats" yaml:"column_stats"`
}

// Stats computes per-column statistics over the loaded table. MaxWidth is
// measured in runes and includes the column name itself.
func (t *Table) Stats() Stats {
	stats := Stats{
		Rows:    t.NumRows(),
		Cols:    t.NumCols(),
		ColStat: make([]ColumnStat, t.NumCols()),
	}

	for i, name := range t.Header {
		stats.ColStat[i] = ColumnStat{
			Index:    i,
			Name:     name,
			MaxWidth: utf8.RuneCountInString(name),
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(stats.ColStat) {
				break
			}
			if cell == "" {
				stats.ColStat[i].Empty++
			}
			if w := utf8.RuneCountInString(cell); w > stats.ColStat[i].MaxWidth {
				stats.ColStat[i].MaxWidth = w
			}
		}
	}
	return stats
}
