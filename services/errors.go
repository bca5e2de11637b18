package services

// StateError reports an operation attempted from a status that does not
// permit it (e.g. cancelling a reminder that was already sent). The error
// middleware maps it to 409 Conflict.
type StateError struct {
	Entity  string
	Action  Action
	Current string
	msg     string
}

func (e *StateError) Error() string {
	return e.msg
}
