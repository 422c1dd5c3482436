package http

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"

	"library-backend/internal/domain"
)

type createBookRequest struct {
	Title  string `json:"title"`
	Writer string `json:"writer"`
}

func (r createBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Writer, validation.Required, validation.Length(1, 255)),
	)
}

type createMemberRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

func (r createMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.PhoneNumber, validation.Required, validation.Length(1, 32)),
	)
}

// MemberID is a pointer so an omitted field can be told apart from a bad one.
type issueLoanRequest struct {
	MemberID *int64 `json:"member_id"`
}

func (r issueLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.Required, validation.Min(int64(1))),
	)
}

type bookResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Writer    string    `json:"writer"`
	CreatedAt time.Time `json:"created_at"`
}

type memberResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type loanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type returnResponse struct {
	RentalID int64 `json:"rental_id"`
}

type rentalSummaryResponse struct {
	MemberName  string `json:"member_name"`
	MemberPhone string `json:"member_phone"`
	BookTitle   string `json:"book_title"`
	BookWriter  string `json:"book_writer"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{ID: b.ID, Title: b.Title, Writer: b.Writer, CreatedAt: b.CreatedAt}
}

func toBookResponses(books []domain.Book) []bookResponse {
	return lo.Map(books, func(b domain.Book, _ int) bookResponse {
		return toBookResponse(&b)
	})
}

func toSummaryResponses(summaries []domain.RentalSummary) []rentalSummaryResponse {
	return lo.Map(summaries, func(s domain.RentalSummary, _ int) rentalSummaryResponse {
		return rentalSummaryResponse{
			MemberName:  s.MemberName,
			MemberPhone: s.MemberPhone,
			BookTitle:   s.BookTitle,
			BookWriter:  s.BookWriter,
		}
	})
}
