package reminder

import "fmt"

// ValidationError indicates user input that cannot become a reminder,
// such as a due time that is not in the future. The message is safe to
// show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var _ error = (*ValidationError)(nil)

// NotFoundError indicates a cancel for an id that does not exist for the
// requesting chat. A foreign chat's id is indistinguishable from a
// nonexistent one.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no reminder found with id %s", e.ID)
}

var _ error = (*NotFoundError)(nil)
