package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

func (controller *BooksController) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/books",
		Summary:       "Create book",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, controller.CreateBook)

	huma.Register(api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/books",
		Summary:     "List books",
		Description: "Returns all books, newest first",
		Tags:        []string{"Books"},
	}, controller.ListBooks)

	huma.Register(api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, controller.GetBook)

	huma.Register(api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/books/{id}",
		Summary:     "Update book",
		Description: "Changes only the supplied fields",
		Tags:        []string{"Books"},
	}, controller.UpdateBook)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/books/{id}",
		Summary:       "Delete book",
		Description:   "Deletes the book together with its reviews and tag associations",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
	}, controller.DeleteBook)
}

// === DTOs ===

type BookResponse struct {
	ID            string         `json:"id" doc:"Book ID"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Publisher     string         `json:"publisher,omitempty"`
	PublishedDate *string        `json:"published_date,omitempty" doc:"Publication date, YYYY-MM-DD"`
	PageCount     int            `json:"page_count"`
	Language      string         `json:"language"`
	Tags          *[]TagResponse `json:"tags,omitempty" doc:"Omitted when tags were not requested"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func newBookResponse(b *entities.Book, withTags bool) BookResponse {
	resp := BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		PageCount: b.PageCount,
		Language:  b.LanguageCode,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.PublishedDate != nil {
		date := b.PublishedDate.String()
		resp.PublishedDate = &date
	}
	if withTags {
		tags := newTagResponses(b.Tags)
		resp.Tags = &tags
	}
	return resp
}

func newBookResponses(books []entities.Book, withTags bool) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i := range books {
		resp[i] = newBookResponse(&books[i], withTags)
	}
	return resp
}

type CreateBookBody struct {
	Title         string `json:"title" maxLength:"255" doc:"Unique title"`
	Author        string `json:"author" maxLength:"255"`
	Publisher     string `json:"publisher,omitempty" maxLength:"255"`
	PublishedDate string `json:"published_date,omitempty" doc:"YYYY-MM-DD, not in the future"`
	PageCount     int    `json:"page_count" minimum:"1"`
	Language      string `json:"language" maxLength:"5" doc:"Language code"`
}

type CreateBookInput struct {
	Body CreateBookBody
}

type UpdateBookBody struct {
	Title         *string `json:"title,omitempty" maxLength:"255"`
	Author        *string `json:"author,omitempty" maxLength:"255"`
	Publisher     *string `json:"publisher,omitempty" maxLength:"255"`
	PublishedDate *string `json:"published_date,omitempty" doc:"YYYY-MM-DD, not in the future"`
	PageCount     *int    `json:"page_count,omitempty" minimum:"1"`
	Language      *string `json:"language,omitempty" maxLength:"5"`
}

type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookBody
}

type ListBooksInput struct {
	WithTags bool `query:"with_tags" default:"true" doc:"Include each book's tags"`
}

type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

type BookOutput struct {
	Body BookResponse
}

type BooksOutput struct {
	Body []BookResponse
}

// === Handlers ===

func (controller *BooksController) CreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := controller.books.CreateBook(ctx, services.CreateBookRequest{
		Title:         input.Body.Title,
		Author:        input.Body.Author,
		Publisher:     input.Body.Publisher,
		PublishedDate: input.Body.PublishedDate,
		PageCount:     input.Body.PageCount,
		Language:      input.Body.Language,
	})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book, true)}, nil
}

func (controller *BooksController) ListBooks(ctx context.Context, input *ListBooksInput) (*BooksOutput, error) {
	books, err := controller.books.ListBooks(ctx, input.WithTags)
	if err != nil {
		return nil, err
	}
	return &BooksOutput{Body: newBookResponses(books, input.WithTags)}, nil
}

func (controller *BooksController) GetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := controller.books.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book, true)}, nil
}

func (controller *BooksController) UpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := controller.books.UpdateBook(ctx, input.ID, services.UpdateBookRequest{
		Title:         input.Body.Title,
		Author:        input.Body.Author,
		Publisher:     input.Body.Publisher,
		PublishedDate: input.Body.PublishedDate,
		PageCount:     input.Body.PageCount,
		Language:      input.Body.Language,
	})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book, true)}, nil
}

func (controller *BooksController) DeleteBook(ctx context.Context, input *BookIDInput) (*struct{}, error) {
	if err := controller.books.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
