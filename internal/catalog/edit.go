package catalog

// EditState is the working copy of a product's mutable fields plus the
// owning vendor. It remembers the values it was loaded with so callers can
// tell which fields the operator changed.
type EditState struct {
	Fields
	OwnerID string

	base  Fields
	dirty map[Field]bool
}

// Load overwrites every field with the loaded values and clears the dirty set.
func (s *EditState) Load(v Fields) {
	s.Fields = v
	s.base = v
	s.dirty = nil
}

// Set replaces one field verbatim. Other fields are untouched.
func (s *EditState) Set(f Field, value string) {
	s.Fields.set(f, value)
	if s.dirty == nil {
		s.dirty = make(map[Field]bool)
	}
	if s.base.Get(f) == value {
		delete(s.dirty, f)
		return
	}
	s.dirty[f] = true
}

// Dirty reports whether f differs from its loaded value.
func (s EditState) Dirty(f Field) bool {
	return s.dirty[f]
}

// HasChanges reports whether any field differs from its loaded value.
func (s EditState) HasChanges() bool {
	return len(s.dirty) > 0
}

// DirtyFields returns the changed fields in form order.
func (s EditState) DirtyFields() []Field {
	var out []Field
	for _, f := range AllFields() {
		if s.dirty[f] {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy that shares no mutable state with s.
func (s EditState) Clone() EditState {
	out := s
	if s.dirty != nil {
		out.dirty = make(map[Field]bool, len(s.dirty))
		for f, v := range s.dirty {
			out.dirty[f] = v
		}
	}
	return out
}

// UpdateRequest builds the update payload for productID acting as vendorID.
func (s EditState) UpdateRequest(productID, vendorID string) UpdateRequest {
	return UpdateRequest{Fields: s.Fields, ProductID: productID, VendorID: vendorID}
}
