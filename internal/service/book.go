package service

import (
	"context"
	"fmt"
	"strings"

	"library-backend/internal/domain"
	"library-backend/internal/repository"
)

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) CreateBook(ctx context.Context, title, writer string) (*domain.Book, error) {
	title, writer = strings.TrimSpace(title), strings.TrimSpace(writer)
	if title == "" || writer == "" {
		return nil, fmt.Errorf("title and writer are required: %w", domain.ErrInvalidArgument)
	}

	book := &domain.Book{Title: title, Writer: writer}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.ListOrderByCreatedAt(ctx)
}
