package reporting

// DefaultReporter combines all default reporter implementations.
type DefaultReporter struct {
	*DefaultConsoleReporter
	*DefaultCSVReporter
	*DefaultExcelReporter
	*DefaultJSONReporter
	*DefaultPathManager
}

// NewDefaultReporter creates a reporter with all default implementations.
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		DefaultConsoleReporter: NewDefaultConsoleReporter(),
		DefaultCSVReporter:     NewDefaultCSVReporter(),
		DefaultExcelReporter:   NewDefaultExcelReporter(),
		DefaultJSONReporter:    NewDefaultJSONReporter(),
		DefaultPathManager:     NewDefaultPathManager(),
	}
}
