package store

import "slices"

func (s *Store) BulkUpdating() bool {
	return s.bulkDepth > 0
}

// StartBulkUpdate opens a batch. Batches nest; changes made inside are
// delivered once, when the outermost batch ends.
func (s *Store) StartBulkUpdate() {
	s.bulkDepth++
}

// EndBulkUpdate closes a batch and, if it was the outermost one, delivers the
// accumulated changes as a single notification.
func (s *Store) EndBulkUpdate() error {
	if s.bulkDepth > 0 {
		s.bulkDepth--
	}
	if s.bulkDepth > 0 || s.pending.Cardinality() == 0 {
		return nil
	}

	ids := s.pending.ToSlice()
	s.pending.Clear()
	slices.Sort(ids)

	props := make([]*Prop, 0, len(ids))
	for _, id := range ids {
		if prop, ok := s.lookup(id); ok {
			props = append(props, prop)
		}
	}
	if len(props) == 0 {
		return nil
	}
	return s.notify(props)
}

// Bulk runs fn inside a batch. The batch is closed even if fn fails; fn's
// error wins over the delivery error.
func (s *Store) Bulk(fn func() error) error {
	s.StartBulkUpdate()
	err := fn()
	if endErr := s.EndBulkUpdate(); err == nil {
		err = endErr
	}
	return err
}
