package grpc

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"library-backend/internal/service"
)

var _ LibraryServiceServer = (*LibraryHandler)(nil)

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

func (h *LibraryHandler) CreateBook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	title, err := stringField(req, "title")
	if err != nil {
		return nil, invalidArgument(err)
	}
	writer, err := stringField(req, "writer")
	if err != nil {
		return nil, invalidArgument(err)
	}

	book, err := h.bookSvc.CreateBook(ctx, title, writer)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapDomainBookToProto(book), nil
}

func (h *LibraryHandler) GetBook(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	book, err := h.bookSvc.GetBook(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapDomainBookToProto(book), nil
}

func (h *LibraryHandler) ListBooks(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	books, err := h.bookSvc.ListBooks(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapDomainBooksToProto(books), nil
}

func (h *LibraryHandler) CreateMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, invalidArgument(err)
	}
	phone, err := stringField(req, "phone_number")
	if err != nil {
		return nil, invalidArgument(err)
	}

	member, err := h.memberSvc.CreateMember(ctx, name, phone)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapDomainMemberToProto(member), nil
}

// IssueLoan always answers with {status, message} once the request was
// evaluated; refused loans are not errors.
func (h *LibraryHandler) IssueLoan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	bookID, err := int64Field(req, "book_id")
	if err != nil {
		return nil, invalidArgument(err)
	}
	memberID, err := int64Field(req, "member_id")
	if err != nil {
		return nil, invalidArgument(err)
	}

	outcome, err := h.loanSvc.IssueLoan(ctx, bookID, memberID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapLoanOutcomeToProto(outcome), nil
}

func (h *LibraryHandler) ReturnLoan(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	rentalID, err := h.loanSvc.ReturnLoan(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return wrapperspb.Int64(rentalID), nil
}

func (h *LibraryHandler) ListMemberRentals(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	summaries, err := h.loanSvc.ListMemberRentals(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return MapRentalSummariesToProto(summaries), nil
}
