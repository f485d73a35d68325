package dto

// BookRequest is a student's attempt to reserve a slot.
type BookRequest struct {
	SlotID       string  `json:"slotId" validate:"required"`
	StudentName  string  `json:"studentName" validate:"required,min=2,max=120"`
	StudentEmail string  `json:"studentEmail" validate:"required,email"`
	StudentPhone string  `json:"studentPhone" validate:"required,phone"`
	Note         *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// BookResponse confirms a successful reservation.
type BookResponse struct {
	BookingID string `json:"bookingId"`
	SlotID    string `json:"slotId"`
}
