package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// CategoryInUseError is returned when a category still has blocks assigned.
type CategoryInUseError struct {
	Id    string
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("Bu kategoride %d zorunlu bilgi bulunmaktadır. Önce zorunlu bilgileri farklı bir kategoriye taşıyın.", e.Count)
}
