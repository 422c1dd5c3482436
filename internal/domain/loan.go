package domain

// LoanOutcome is the result of a loan request that was evaluated. Every value
// other than LoanOutcomeSuccess means the loan was refused.
type LoanOutcome string

const (
	LoanOutcomeNotAMember        LoanOutcome = "not_a_member"
	LoanOutcomeHasUnreturnedBook LoanOutcome = "has_unreturned_book"
	LoanOutcomeBookUnavailable   LoanOutcome = "book_unavailable"
	LoanOutcomeSuccess           LoanOutcome = "success"
)

func (o LoanOutcome) Message() string {
	switch o {
	case LoanOutcomeNotAMember:
		return "not a registered member"
	case LoanOutcomeHasUnreturnedBook:
		return "member has an unreturned book and cannot borrow another"
	case LoanOutcomeBookUnavailable:
		return "book is already on loan"
	case LoanOutcomeSuccess:
		return "loan successful"
	default:
		return string(o)
	}
}

func (o LoanOutcome) Succeeded() bool {
	return o == LoanOutcomeSuccess
}

// RentalSummary joins a rental with the member and book it references.
type RentalSummary struct {
	MemberName  string `json:"member_name"`
	MemberPhone string `json:"member_phone"`
	BookTitle   string `json:"book_title"`
	BookWriter  string `json:"book_writer"`
}

func NewRentalSummary(m *Member, b *Book) RentalSummary {
	return RentalSummary{
		MemberName:  m.Name,
		MemberPhone: m.PhoneNumber,
		BookTitle:   b.Title,
		BookWriter:  b.Writer,
	}
}

// DanglingRental is a ledger entry whose book or member row is missing.
type DanglingRental struct {
	RentalID      int64 `json:"rental_id"`
	BookID        int64 `json:"book_id"`
	MemberID      int64 `json:"member_id"`
	MissingBook   bool  `json:"missing_book"`
	MissingMember bool  `json:"missing_member"`
}
