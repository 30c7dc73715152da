package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// ScheduleKind discriminates the two schedule item variants. The backend
// historically inferred the variant from field presence; the SDK carries an
// explicit tag so merge logic can be exhaustive.
type ScheduleKind string

const (
	KindAppointment ScheduleKind = "appointment"
	KindMedication  ScheduleKind = "medication"
)

// ScheduleName names a schedule collection on the backend.
type ScheduleName string

const (
	ScheduleAppointments ScheduleName = "appointments"
	ScheduleMedications  ScheduleName = "medications"
)

// Kind returns the item variant stored in the named collection.
func (n ScheduleName) Kind() ScheduleKind {
	if n == ScheduleMedications {
		return KindMedication
	}
	return KindAppointment
}

// Singular returns the backend's singular form used in update paths,
// e.g. "appointments" -> "appointment".
func (n ScheduleName) Singular() string {
	s := string(n)
	if len(s) > 0 && s[len(s)-1] == 's' {
		return s[:len(s)-1]
	}
	return s
}

// ScheduleItem is a tagged union of an appointment and a medication.
// Appointment fields: Title, Location, Reminder. Medication fields: Name,
// Frequency, TimesPerDay, SpecificDays, Prescriber, Photo. Date and Notes
// are shared. Identity is ID (server-assigned).
type ScheduleItem struct {
	ID   string       `json:"_id"`
	Kind ScheduleKind `json:"kind"`

	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`

	// Appointment variant
	Title    string `json:"title,omitempty"`
	Location string `json:"location,omitempty"`
	Reminder string `json:"reminder,omitempty"`

	// Medication variant
	Name         string   `json:"name,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	TimesPerDay  int      `json:"timesPerDay,omitempty"`
	SpecificDays []string `json:"specificDays,omitempty"`
	Prescriber   string   `json:"prescriber,omitempty"`
	Photo        string   `json:"photo,omitempty"`
}

// FileInfo is one uploaded file inside a folder. URI is a time-limited
// signed URL minted by the server on every list.
type FileInfo struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URI         string    `json:"uri"`
	Type        string    `json:"type,omitempty"`
	UploadTime  time.Time `json:"uploadTime"`
}

// Like records one user's favorite on a post or reply. Membership in a
// likes list is set-like keyed by UserID: at most one like per user per
// target. Pending marks a like synthesized client-side before server
// confirmation; its ID is a placeholder and never assumed stable.
type Like struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	// Pending survives JSON round-trips because cache snapshots are
	// deep-copied through JSON; the server never sends the field.
	Pending bool `json:"pending,omitempty"`
}

// Reply is a nested post-like entity with its own likes. Pending marks a
// reply created optimistically; an authoritative refetch replaces the whole
// reply list and drops placeholders.
type Reply struct {
	ID          string    `json:"_id"`
	Owner       string    `json:"owner"`
	Description string    `json:"description"`
	Likes       []Like    `json:"likes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Pending     bool      `json:"pending,omitempty"`
}

// Post is one forum post in a cancer-type feed.
type Post struct {
	ID          string    `json:"_id"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Owner       string    `json:"owner"`
	Likes       []Like    `json:"likes,omitempty"`
	Replies     []Reply   `json:"replies,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FollowProfile is the cached follow-graph view of one user. The server
// maintains the biconditional (A follows B iff B is followed by A); the
// client assumes it speculatively during optimistic follow toggles.
type FollowProfile struct {
	UserID     string   `json:"userId"`
	Followers  []string `json:"followers"`
	Followings []string `json:"followings"`
}
