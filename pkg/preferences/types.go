package preferences

type ErrNotFound struct {
	Key string
}

func (e *ErrNotFound) Error() string {
	return "preference not found: " + e.Key
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
