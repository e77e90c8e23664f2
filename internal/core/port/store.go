package port

// Store is the entity store shared by the request handlers and the
// due-reminder scanner.
type Store interface {
	UserStore
	PlantStore
	ReminderStore
}

// Page bounds a query result. A nil Limit means no upper bound.
type Page struct {
	Skip  int
	Limit *int
}
