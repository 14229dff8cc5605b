package frame

// PanelKind selects which payload a panel carries.
type PanelKind string

const (
	KindStats PanelKind = "stats"
	KindTable PanelKind = "table"
	KindText  PanelKind = "text"
)

// Stat is one labelled figure in a stats panel.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a rendered table payload. Cells are already fitted.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Text is a line-oriented payload.
type Text struct {
	Lines []string `json:"lines"`
}

// Panel is one renderable unit of a frame. Exactly the payload matching
// Kind is set; use the constructors rather than filling it by hand.
type Panel struct {
	ID    string
	Title string
	Kind  PanelKind
	Stats []Stat
	Table *Table
	Text  *Text
}

// StatsPanel builds a stats panel.
func StatsPanel(id, title string, stats ...Stat) Panel {
	if stats == nil {
		stats = []Stat{}
	}
	return Panel{ID: id, Title: title, Kind: KindStats, Stats: stats}
}

// TablePanel builds a table panel.
func TablePanel(id, title string, columns []string, rows [][]string) Panel {
	if columns == nil {
		columns = []string{}
	}
	if rows == nil {
		rows = [][]string{}
	}
	return Panel{ID: id, Title: title, Kind: KindTable, Table: &Table{Columns: columns, Rows: rows}}
}

// TextPanel builds a text panel.
func TextPanel(id, title string, lines ...string) Panel {
	if lines == nil {
		lines = []string{}
	}
	return Panel{ID: id, Title: title, Kind: KindText, Text: &Text{Lines: lines}}
}

type panelJSON struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Kind  PanelKind `json:"kind"`
	Stats *[]Stat   `json:"stats,omitempty"`
	Table *Table    `json:"table,omitempty"`
	Text  *Text     `json:"text,omitempty"`
}

// MarshalJSON writes only the payload that matches Kind, always non-null.
func (p Panel) MarshalJSON() ([]byte, error) {
	out := panelJSON{ID: p.ID, Title: p.Title, Kind: p.Kind}
	switch p.Kind {
	case KindStats:
		stats := p.Stats
		if stats == nil {
			stats = []Stat{}
		}
		out.Stats = &stats
	case KindTable:
		t := Table{Columns: []string{}, Rows: [][]string{}}
		if p.Table != nil {
			if p.Table.Columns != nil {
				t.Columns = p.Table.Columns
			}
			if p.Table.Rows != nil {
				t.Rows = p.Table.Rows
			}
		}
		out.Table = &t
	default:
		out.Kind = KindText
		t := Text{Lines: []string{}}
		if p.Text != nil && p.Text.Lines != nil {
			t.Lines = p.Text.Lines
		}
		out.Text = &t
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a panel written by MarshalJSON.
func (p *Panel) UnmarshalJSON(data []byte) error {
	var in panelJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Panel{ID: in.ID, Title: in.Title, Kind: in.Kind, Table: in.Table, Text: in.Text}
	if in.Stats != nil {
		p.Stats = *in.Stats
	}
	return nil
}

// Lines renders the panel body as plain text lines.
func (p Panel) Lines(render func(columns []string, rows [][]string) []string) []string {
	switch p.Kind {
	case KindStats:
		out := make([]string, 0, len(p.Stats))
		for _, s := range p.Stats {
			out = append(out, s.Label+": "+s.Value)
		}
		return out
	case KindTable:
		if p.Table == nil {
			return nil
		}
		return render(p.Table.Columns, p.Table.Rows)
	default:
		if p.Text == nil {
			return nil
		}
		return p.Text.Lines
	}
}
