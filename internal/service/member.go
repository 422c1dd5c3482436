package service

import (
	"context"
	"fmt"
	"strings"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) CreateMember(ctx context.Context, name, phoneNumber string) (*domain.Member, error) {
	name, phoneNumber = strings.TrimSpace(name), strings.TrimSpace(phoneNumber)
	if name == "" || phoneNumber == "" {
		return nil, fmt.Errorf("name and phone number are required: %w", domain.ErrInvalidArgument)
	}

	member := &domain.Member{Name: name, PhoneNumber: phoneNumber}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
