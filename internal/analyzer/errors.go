package analyzer

// ValidationError reports bad user input. It fails fast: no provider
// call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DataError reports that the data provider returned nothing or failed.
// It always accompanies a nil report and nil rows.
type DataError struct {
	Message string
	Cause   error
}

func (e *DataError) Error() string { return e.Message }

func (e *DataError) Unwrap() error { return e.Cause }
