package graph

// Store accumulates raw link records. Upserting a (source, target) pair that
// already exists adds the new weight to the stored one.
type Store interface {
	UpsertRecord(r *Record) error
	Records() (RecordIterator, error)
}

// ValidateRecord checks that r can be stored.
func ValidateRecord(r *Record) error {
	switch {
	case KeepCase(r.Source) == "" || KeepCase(r.Target) == "":
		return ErrInvalidRecord
	case r.Weight < 0:
		return ErrInvalidRecord
	}
	return nil
}
