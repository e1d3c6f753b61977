package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Organization{},
		&Profile{},
		&Client{},
		&Service{},
		&Product{},
		&Appointment{},
		&StockMovement{},
		&Expense{},
		&Integration{},
		&AuditLog{},
	}
}
