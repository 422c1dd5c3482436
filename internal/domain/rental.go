package domain

import "time"

// DefaultLoanPeriodDays is the number of days a member may keep a book.
const DefaultLoanPeriodDays = 7

// Rental is a ledger entry linking a book and a member. Available is false
// while the book is out on loan.
//
// DueDate holds the day the loan was issued and ReturnedDate the day the
// book has to be back; both are fixed when the rental is created.
type Rental struct {
	ID           int64     `json:"id"`
	BookID       int64     `json:"book_id"`
	MemberID     int64     `json:"member_id"`
	DueDate      time.Time `json:"due_date"`
	ReturnedDate time.Time `json:"returned_date"`
	Available    bool      `json:"available"`
}

// NewRental builds an active rental issued at issuedAt.
func NewRental(bookID, memberID int64, issuedAt time.Time, periodDays int) *Rental {
	if periodDays <= 0 {
		periodDays = DefaultLoanPeriodDays
	}
	issued := truncateToDay(issuedAt)
	return &Rental{
		BookID:       bookID,
		MemberID:     memberID,
		DueDate:      issued,
		ReturnedDate: issued.AddDate(0, 0, periodDays),
		Available:    false,
	}
}

// IsActive reports whether the rental is an unreturned loan.
func (r *Rental) IsActive() bool {
	return !r.Available
}

// MarkReturned releases the book. Dates are left as recorded at issue time.
func (r *Rental) MarkReturned() {
	r.Available = true
}

// HasActiveLoan reports whether any of the rentals is still out.
func HasActiveLoan(rentals []Rental) bool {
	for i := range rentals {
		if rentals[i].IsActive() {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
