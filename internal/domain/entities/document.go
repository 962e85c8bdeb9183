package entities

// Document is the persisted container for all local notes.
// CTime and MTime describe the container, not any single note.
type Document struct {
	CTime int64  `yaml:"cTime" json:"cTime"`
	MTime int64  `yaml:"mTime" json:"mTime"`
	Notes []Note `yaml:"entities" json:"entities"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := Document{CTime: d.CTime, MTime: d.MTime, Notes: make([]Note, len(d.Notes))}
	for i, n := range d.Notes {
		c.Notes[i] = n.Clone()
	}
	return c
}

// Find returns the index of the note with the given id, or -1.
func (d Document) Find(id string) int {
	for i := range d.Notes {
		if d.Notes[i].ID == id {
			return i
		}
	}
	return -1
}
