package domain

// Pagination summarizes where a page sits within a filtered result set.
type Pagination struct {
	CurrentPage   int
	TotalPages    int
	TotalContacts int64
	HasNextPage   bool
	HasPrevPage   bool
}

// ContactPage is one page of contacts plus its pagination block.
type ContactPage struct {
	Contacts   []Contact
	Pagination Pagination
}
