package normalization

// FieldError locates a structural problem in a response payload.
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func missing(path string) error {
	return &FieldError{Path: path, Reason: "missing required field"}
}

func notObject(path string) error {
	return &FieldError{Path: path, Reason: "expected an object"}
}

func notList(path string) error {
	return &FieldError{Path: path, Reason: "expected a list"}
}
