package gasterr

// Collector accumulates non-fatal diagnostics for one compilation unit.
type Collector struct {
	file   string
	errors []error
}

// NewCollector creates a collector whose diagnostics carry file.
func NewCollector(file string) *Collector {
	return &Collector{file: file}
}

// ReportError appends a diagnostic. It never fails.
func (c *Collector) ReportError(message string, line, column int) {
	c.errors = append(c.errors, NewSemanticErrorInFile(c.file, line, column, message))
}

// Errors returns the diagnostics in report order.
func (c *Collector) Errors() []error {
	return c.errors
}

func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Err returns nil when nothing was reported, otherwise a *MultiError.
func (c *Collector) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	errs := make([]error, len(c.errors))
	copy(errs, c.errors)
	return &MultiError{Errors: errs}
}
