package model

// Announcement is an owner-authored notice shown on the staff dashboard.
type Announcement struct {
	BaseModel
	Title    string `db:"title" json:"title"`
	Body     string `db:"body" json:"body"`
	AuthorID string `db:"author_id" json:"authorId"`
	Pinned   bool   `db:"pinned" json:"pinned"`
}
