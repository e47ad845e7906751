package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type TagsController struct {
	tags TagService
}

func NewTagsController(tags TagService) *TagsController {
	return &TagsController{tags: tags}
}

func (controller *TagsController) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/tags",
		Summary:     "List tags",
		Tags:        []string{"Tags"},
	}, controller.ListTags)

	huma.Register(api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/tags",
		Summary:       "Create tag",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
	}, controller.CreateTag)

	huma.Register(api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/tags/{id}",
		Summary:     "Get tag",
		Tags:        []string{"Tags"},
	}, controller.GetTag)

	huma.Register(api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/tags/{id}",
		Summary:     "Rename tag",
		Tags:        []string{"Tags"},
	}, controller.UpdateTag)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes the tag and its book associations; the books are kept",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, controller.DeleteTag)

	huma.Register(api, huma.Operation{
		OperationID: "getTagBooks",
		Method:      http.MethodGet,
		Path:        "/tags/{id}/books",
		Summary:     "List books with a tag",
		Tags:        []string{"Tags"},
	}, controller.BooksByTag)

	huma.Register(api, huma.Operation{
		OperationID: "addBookTags",
		Method:      http.MethodPost,
		Path:        "/books/{id}/tags",
		Summary:     "Tag a book",
		Description: "Adds tags to the book. The body is a JSON array of tag IDs. Tags already on the book are left as they are.",
		Tags:        []string{"Tags"},
	}, controller.AssociateTags)

	huma.Register(api, huma.Operation{
		OperationID: "removeBookTag",
		Method:      http.MethodDelete,
		Path:        "/books/{id}/tags/{tag_id}",
		Summary:     "Untag a book",
		Tags:        []string{"Tags"},
	}, controller.DisassociateTag)
}

// === DTOs ===

type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func newTagResponse(t *entities.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func newTagResponses(tags []entities.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i := range tags {
		resp[i] = newTagResponse(&tags[i])
	}
	return resp
}

type TagBody struct {
	Name string `json:"name" maxLength:"100" doc:"Unique tag name"`
}

type CreateTagInput struct {
	Body TagBody
}

type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body TagBody
}

type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

type AssociateTagsInput struct {
	BookID string   `path:"id" doc:"Book ID"`
	Body   []string `minItems:"1" doc:"IDs of existing tags"`
}

type DisassociateTagInput struct {
	BookID string `path:"id" doc:"Book ID"`
	TagID  string `path:"tag_id" doc:"Tag ID"`
}

type TagOutput struct {
	Body TagResponse
}

type TagsOutput struct {
	Body []TagResponse
}

// === Handlers ===

func (controller *TagsController) ListTags(ctx context.Context, _ *struct{}) (*TagsOutput, error) {
	tags, err := controller.tags.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagsOutput{Body: newTagResponses(tags)}, nil
}

func (controller *TagsController) CreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag, err := controller.tags.CreateTag(ctx, services.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: newTagResponse(tag)}, nil
}

func (controller *TagsController) GetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	tag, err := controller.tags.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: newTagResponse(tag)}, nil
}

func (controller *TagsController) UpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	tag, err := controller.tags.UpdateTag(ctx, input.ID, services.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: newTagResponse(tag)}, nil
}

func (controller *TagsController) DeleteTag(ctx context.Context, input *TagIDInput) (*struct{}, error) {
	if err := controller.tags.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (controller *TagsController) BooksByTag(ctx context.Context, input *TagIDInput) (*BooksOutput, error) {
	books, err := controller.tags.BooksByTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BooksOutput{Body: newBookResponses(books, true)}, nil
}

func (controller *TagsController) AssociateTags(ctx context.Context, input *AssociateTagsInput) (*BookOutput, error) {
	book, err := controller.tags.AssociateTags(ctx, input.BookID, services.AssociateTagsRequest{TagIDs: input.Body})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book, true)}, nil
}

func (controller *TagsController) DisassociateTag(ctx context.Context, input *DisassociateTagInput) (*BookOutput, error) {
	book, err := controller.tags.DisassociateTag(ctx, input.BookID, input.TagID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: newBookResponse(book, true)}, nil
}
