package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type ReviewsController struct {
	reviews ReviewService
}

func NewReviewsController(reviews ReviewService) *ReviewsController {
	return &ReviewsController{reviews: reviews}
}

func (controller *ReviewsController) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/books/{id}/reviews",
		Summary:       "Review a book",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
	}, controller.CreateReview)

	huma.Register(api, huma.Operation{
		OperationID: "listBookReviews",
		Method:      http.MethodGet,
		Path:        "/books/{id}/reviews",
		Summary:     "List a book's reviews",
		Description: "Returns the book's reviews, newest first",
		Tags:        []string{"Reviews"},
	}, controller.ListReviews)

	huma.Register(api, huma.Operation{
		OperationID: "getReview",
		Method:      http.MethodGet,
		Path:        "/reviews/{id}",
		Summary:     "Get review",
		Tags:        []string{"Reviews"},
	}, controller.GetReview)

	huma.Register(api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPut,
		Path:        "/reviews/{id}",
		Summary:     "Update review",
		Tags:        []string{"Reviews"},
	}, controller.UpdateReview)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteReview",
		Method:        http.MethodDelete,
		Path:          "/reviews/{id}",
		Summary:       "Delete review",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusNoContent,
	}, controller.DeleteReview)
}

// === DTOs ===

type ReviewResponse struct {
	ID         string    `json:"id" doc:"Review ID"`
	BookID     string    `json:"book_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	UserUID    *string   `json:"user_uid,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newReviewResponse(r *entities.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		UserUID:    r.UserUID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type CreateReviewBody struct {
	Rating     *int    `json:"rating" doc:"0 to 4"`
	ReviewText string  `json:"review_text" maxLength:"5000"`
	UserUID    *string `json:"user_uid,omitempty" maxLength:"64" doc:"Reviewer identifier"`
}

type CreateReviewInput struct {
	BookID string `path:"id" doc:"Book ID"`
	Body   CreateReviewBody
}

type UpdateReviewBody struct {
	Rating     *int    `json:"rating,omitempty" doc:"0 to 4"`
	ReviewText *string `json:"review_text,omitempty" maxLength:"5000"`
	UserUID    *string `json:"user_uid,omitempty" maxLength:"64" doc:"Empty string clears it"`
}

type UpdateReviewInput struct {
	ID   string `path:"id" doc:"Review ID"`
	Body UpdateReviewBody
}

type ReviewIDInput struct {
	ID string `path:"id" doc:"Review ID"`
}

type ReviewOutput struct {
	Body ReviewResponse
}

type ReviewsOutput struct {
	Body []ReviewResponse
}

// === Handlers ===

func (controller *ReviewsController) CreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	review, err := controller.reviews.CreateReview(ctx, input.BookID, services.CreateReviewRequest{
		Rating:     input.Body.Rating,
		ReviewText: input.Body.ReviewText,
		UserUID:    input.Body.UserUID,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: newReviewResponse(review)}, nil
}

func (controller *ReviewsController) ListReviews(ctx context.Context, input *BookIDInput) (*ReviewsOutput, error) {
	reviews, err := controller.reviews.ListReviews(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = newReviewResponse(&reviews[i])
	}
	return &ReviewsOutput{Body: resp}, nil
}

func (controller *ReviewsController) GetReview(ctx context.Context, input *ReviewIDInput) (*ReviewOutput, error) {
	review, err := controller.reviews.GetReview(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: newReviewResponse(review)}, nil
}

func (controller *ReviewsController) UpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	review, err := controller.reviews.UpdateReview(ctx, input.ID, services.UpdateReviewRequest{
		Rating:     input.Body.Rating,
		ReviewText: input.Body.ReviewText,
		UserUID:    input.Body.UserUID,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: newReviewResponse(review)}, nil
}

func (controller *ReviewsController) DeleteReview(ctx context.Context, input *ReviewIDInput) (*struct{}, error) {
	if err := controller.reviews.DeleteReview(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
