package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Organization{},
		&Membership{},
		&OfficerRole{},
		&Announcement{},
		&Event{},
		&Setting{},
	}
}
