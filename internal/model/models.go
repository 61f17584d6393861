package model

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ChatSession{},
		&ChatMessage{},
	}
}
