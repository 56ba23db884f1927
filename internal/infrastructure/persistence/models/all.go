package models

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&TeamModel{},
		&EntityModel{},
		&DepartmentModel{},
		&ActorModel{},
		&ActorDepartmentModel{},
		&TicketModel{},
		&MessageModel{},
		&MessageReadModel{},
		&TopicModel{},
		&ConversationModel{},
		&ConversationReadModel{},
		&HolidayModel{},
		&DaysoffModel{},
		&SponsorModel{},
		&SponsorEntityModel{},
		&ToolModel{},
		&ShiftModel{},
		&UserShiftModel{},
	}
}
