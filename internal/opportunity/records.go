package opportunity

// Records is a mutable list of opportunity records.
type Records struct {
	Items []*Record
}

// Selector narrows a record list. Zero-value fields match everything.
type Selector struct {
	IDs      []string
	Status   Status
	Category Category
	Effort   EffortLevel
}

// Matches reports whether the record passes every set field of the selector.
func (s *Selector) Matches(r *Record) bool {
	if len(s.IDs) > 0 {
		found := false
		for _, id := range s.IDs {
			if r.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.Status != "" && r.Status != s.Status {
		return false
	}
	if s.Category != "" && r.Category != s.Category {
		return false
	}
	if s.Effort != "" && r.Submission.EffortLevel != s.Effort {
		return false
	}
	return true
}

func (rs *Records) Len() int {
	return len(rs.Items)
}

func (rs *Records) FindByID(id string) *Record {
	for _, r := range rs.Items {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Filter returns the records matching the selector. The receiver is not
// modified.
func (rs *Records) Filter(sel *Selector) *Records {
	out := &Records{}
	for _, r := range rs.Items {
		if sel == nil || sel.Matches(r) {
			out.Items = append(out.Items, r)
		}
	}
	return out
}

func (rs *Records) IDs() []string {
	ids := make([]string, 0, len(rs.Items))
	for _, r := range rs.Items {
		ids = append(ids, r.ID)
	}
	return ids
}
