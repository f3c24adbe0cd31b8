package models

// All lists every model managed by auto-migration, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&Team{},
		&TeamMember{},
		&Project{},
		&Task{},
		&Comment{},
		&Activity{},
	}
}
