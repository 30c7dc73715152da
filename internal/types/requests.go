package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// AddScheduleItemRequest holds parameters for a new appointment or
// medication. Kind selects which add endpoint is used and which fields the
// backend reads.
type AddScheduleItemRequest struct {
	Kind ScheduleKind `json:"-"`

	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`

	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
	Reminder string `json:"reminder,omitempty"`

	Name         string   `json:"name,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	TimesPerDay  int      `json:"timesPerDay,omitempty"`
	SpecificDays []string `json:"specificDays,omitempty"`
	Prescriber   string   `json:"prescriber,omitempty"`
	Photo        string   `json:"photo,omitempty"`
}

// Item materializes the request as a ScheduleItem with the given id, used
// for the optimistic append before the server assigns a real id.
func (r AddScheduleItemRequest) Item(id string) ScheduleItem {
	return ScheduleItem{
		ID:           id,
		Kind:         r.Kind,
		Date:         r.Date,
		Notes:        r.Notes,
		Title:        r.Title,
		Location:     r.Location,
		Reminder:     r.Reminder,
		Name:         r.Name,
		Frequency:    r.Frequency,
		TimesPerDay:  r.TimesPerDay,
		SpecificDays: r.SpecificDays,
		Prescriber:   r.Prescriber,
		Photo:        r.Photo,
	}
}

// UpdateScheduleItemRequest carries a field-level patch for one schedule
// item. Nil pointers leave the field untouched.
type UpdateScheduleItemRequest struct {
	Date  *time.Time `json:"date,omitempty"`
	Notes *string    `json:"notes,omitempty"`

	Title    *string `json:"title,omitempty"`
	Location *string `json:"location,omitempty"`
	Reminder *string `json:"reminder,omitempty"`

	Name         *string   `json:"name,omitempty"`
	Frequency    *string   `json:"frequency,omitempty"`
	TimesPerDay  *int      `json:"timesPerDay,omitempty"`
	SpecificDays *[]string `json:"specificDays,omitempty"`
	Prescriber   *string   `json:"prescriber,omitempty"`
	Photo        *string   `json:"photo,omitempty"`
}

// UpdateFileRequest patches a file's title and description.
type UpdateFileRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddReplyRequest holds the body of a new reply.
type AddReplyRequest struct {
	Description string `json:"description"`
}
