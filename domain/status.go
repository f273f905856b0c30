package domain

// StatusSnapshot is a consistent read of the signal state.
// ControllerName is empty when nobody is connected.
type StatusSnapshot struct {
	Color          Color
	TotalSessions  int
	ControllerName string
}
