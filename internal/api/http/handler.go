package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"library-backend/internal/domain"
	"library-backend/internal/service"
)

type LibraryHandler struct {
	bookSvc   service.BookService
	memberSvc service.MemberService
	loanSvc   service.LoanService
}

func NewLibraryHandler(bookSvc service.BookService, memberSvc service.MemberService, loanSvc service.LoanService) *LibraryHandler {
	return &LibraryHandler{
		bookSvc:   bookSvc,
		memberSvc: memberSvc,
		loanSvc:   loanSvc,
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", domain.ErrInvalidArgument)
	}
	return id, nil
}

func decode(r *http.Request, dst interface{ Validate() error }) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}
	return nil
}

func (h *LibraryHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decode(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	book, err := h.bookSvc.CreateBook(r.Context(), req.Title, req.Writer)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookResponse(book))
}

func (h *LibraryHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	book, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookResponse(book))
}

func (h *LibraryHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookSvc.ListBooks(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookResponses(books))
}

func (h *LibraryHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	member, err := h.memberSvc.CreateMember(r.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberResponse{ID: member.ID, Name: member.Name, PhoneNumber: member.PhoneNumber})
}

// IssueLoan answers 200 with the outcome whether or not the loan was granted.
func (h *LibraryHandler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var req issueLoanRequest
	if err := decode(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	outcome, err := h.loanSvc.IssueLoan(r.Context(), bookID, *req.MemberID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanResponse{Status: string(outcome), Message: outcome.Message()})
}

func (h *LibraryHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := h.loanSvc.ReturnLoan(r.Context(), rentalID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, returnResponse{RentalID: id})
}

func (h *LibraryHandler) ListMemberRentals(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	summaries, err := h.loanSvc.ListMemberRentals(r.Context(), memberID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponses(summaries))
}
