package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"library-backend/internal/api/grpc/interceptor"
	"library-backend/internal/domain"
	"library-backend/internal/repository/memory"
	"library-backend/internal/service"
)

func newMockedHandler() (*LibraryHandler, *MockBookService, *MockMemberService, *MockLoanService) {
	bookSvc := new(MockBookService)
	memberSvc := new(MockMemberService)
	loanSvc := new(MockLoanService)
	return NewLibraryHandler(bookSvc, memberSvc, loanSvc), bookSvc, memberSvc, loanSvc
}

func TestLibraryHandler_IssueLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("reports outcome", func(t *testing.T) {
		h, _, _, loanSvc := newMockedHandler()
		loanSvc.On("IssueLoan", mock.Anything, int64(3), int64(9)).Return(domain.LoanOutcomeBookUnavailable, nil)

		req, _ := structpb.NewStruct(map[string]any{"book_id": 3, "member_id": 9})
		resp, err := h.IssueLoan(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "book_unavailable", resp.Fields["status"].GetStringValue())
		assert.Equal(t, "book is already on loan", resp.Fields["message"].GetStringValue())
	})

	t.Run("missing member id reaches service as zero", func(t *testing.T) {
		h, _, _, loanSvc := newMockedHandler()
		loanSvc.On("IssueLoan", mock.Anything, int64(3), int64(0)).
			Return(domain.LoanOutcome(""), fmt.Errorf("member id is required: %w", domain.ErrInvalidArgument))

		req, _ := structpb.NewStruct(map[string]any{"book_id": 3})
		_, err := h.IssueLoan(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("rejects non integral id", func(t *testing.T) {
		h, _, _, loanSvc := newMockedHandler()
		req, _ := structpb.NewStruct(map[string]any{"book_id": 1.5, "member_id": 1})
		_, err := h.IssueLoan(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		loanSvc.AssertNotCalled(t, "IssueLoan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects string id", func(t *testing.T) {
		h, _, _, _ := newMockedHandler()
		req, _ := structpb.NewStruct(map[string]any{"book_id": "1", "member_id": 1})
		_, err := h.IssueLoan(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestLibraryHandler_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		h, bookSvc, _, _ := newMockedHandler()
		bookSvc.On("GetBook", mock.Anything, int64(5)).Return(nil, fmt.Errorf("book 5: %w", domain.ErrNotFound))
		_, err := h.GetBook(ctx, wrapperspb.Int64(5))
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("internal hides cause", func(t *testing.T) {
		h, _, _, loanSvc := newMockedHandler()
		loanSvc.On("ReturnLoan", mock.Anything, int64(2)).Return(int64(0), errors.New("connection reset"))
		_, err := h.ReturnLoan(ctx, wrapperspb.Int64(2))
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.NotContains(t, err.Error(), "connection reset")
	})
}

func TestLibraryHandler_ListMemberRentals(t *testing.T) {
	h, _, _, loanSvc := newMockedHandler()
	loanSvc.On("ListMemberRentals", mock.Anything, int64(4)).Return([]domain.RentalSummary{
		{MemberName: "Ann", MemberPhone: "555", BookTitle: "Dune", BookWriter: "Herbert"},
	}, nil)

	resp, err := h.ListMemberRentals(context.Background(), wrapperspb.Int64(4))
	require.NoError(t, err)
	require.Len(t, resp.Values, 1)
	row := resp.Values[0].GetStructValue().Fields
	assert.Equal(t, "Ann", row["member_name"].GetStringValue())
	assert.Equal(t, "Dune", row["book_title"].GetStringValue())
}

func dialLibrary(t *testing.T) *LibraryServiceClient {
	t.Helper()

	store := memory.NewStore()
	handler := NewLibraryHandler(
		service.NewBookService(store.BookRepository),
		service.NewMemberService(store.MemberRepository),
		service.NewLoanService(store.BookRepository, store.MemberRepository, store.RentalRepository, store.Transactor, service.LoanPolicy{
			Now: func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) },
		}),
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(interceptor.NewLoggingInterceptor().Unary()))
	RegisterLibraryServiceServer(srv, handler)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewLibraryServiceClient(conn)
}

func TestLibraryService_LoanFlow(t *testing.T) {
	ctx := context.Background()
	client := dialLibrary(t)

	bookReq, _ := structpb.NewStruct(map[string]any{"title": "Dune", "writer": "Herbert"})
	book, err := client.CreateBook(ctx, bookReq)
	require.NoError(t, err)
	bookID := book.Fields["id"].GetNumberValue()

	ann, _ := structpb.NewStruct(map[string]any{"name": "Ann", "phone_number": "555-0100"})
	member, err := client.CreateMember(ctx, ann)
	require.NoError(t, err)
	annID := member.Fields["id"].GetNumberValue()

	bob, _ := structpb.NewStruct(map[string]any{"name": "Bob", "phone_number": "555-0101"})
	member, err = client.CreateMember(ctx, bob)
	require.NoError(t, err)
	bobID := member.Fields["id"].GetNumberValue()

	loan := func(memberID float64) string {
		req, _ := structpb.NewStruct(map[string]any{"book_id": bookID, "member_id": memberID})
		resp, err := client.IssueLoan(ctx, req)
		require.NoError(t, err)
		return resp.Fields["status"].GetStringValue()
	}

	assert.Equal(t, "success", loan(annID))
	assert.Equal(t, "has_unreturned_book", loan(annID))
	assert.Equal(t, "book_unavailable", loan(bobID))
	assert.Equal(t, "not_a_member", loan(999))

	returned, err := client.ReturnLoan(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), returned.GetValue())
	assert.Equal(t, "success", loan(bobID))

	rentals, err := client.ListMemberRentals(ctx, wrapperspb.Int64(int64(annID)))
	require.NoError(t, err)
	require.Len(t, rentals.Values, 1)
	assert.Equal(t, "Dune", rentals.Values[0].GetStructValue().Fields["book_title"].GetStringValue())

	books, err := client.ListBooks(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, books.Values, 1)

	_, err = client.ReturnLoan(ctx, wrapperspb.Int64(42))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.ListMemberRentals(ctx, wrapperspb.Int64(0))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
