package grpc

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"

	"library-backend/internal/domain"
)

func MapDomainBookToProto(b *domain.Book) *structpb.Struct {
	if b == nil {
		return nil
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":         structpb.NewNumberValue(float64(b.ID)),
		"title":      structpb.NewStringValue(b.Title),
		"writer":     structpb.NewStringValue(b.Writer),
		"created_at": structpb.NewStringValue(b.CreatedAt.Format(time.RFC3339)),
	}}
}

func MapDomainBooksToProto(books []domain.Book) *structpb.ListValue {
	return &structpb.ListValue{Values: lo.Map(books, func(b domain.Book, _ int) *structpb.Value {
		return structpb.NewStructValue(MapDomainBookToProto(&b))
	})}
}

func MapDomainMemberToProto(m *domain.Member) *structpb.Struct {
	if m == nil {
		return nil
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":           structpb.NewNumberValue(float64(m.ID)),
		"name":         structpb.NewStringValue(m.Name),
		"phone_number": structpb.NewStringValue(m.PhoneNumber),
	}}
}

func MapLoanOutcomeToProto(o domain.LoanOutcome) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status":  structpb.NewStringValue(string(o)),
		"message": structpb.NewStringValue(o.Message()),
	}}
}

func MapRentalSummariesToProto(summaries []domain.RentalSummary) *structpb.ListValue {
	return &structpb.ListValue{Values: lo.Map(summaries, func(s domain.RentalSummary, _ int) *structpb.Value {
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"member_name":  structpb.NewStringValue(s.MemberName),
			"member_phone": structpb.NewStringValue(s.MemberPhone),
			"book_title":   structpb.NewStringValue(s.BookTitle),
			"book_writer":  structpb.NewStringValue(s.BookWriter),
		}})
	})}
}

// int64Field reads an integral number field. An absent or null field reads as 0.
func int64Field(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "", nil
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	default:
		return "", fmt.Errorf("%s must be a string", key)
	}
}
