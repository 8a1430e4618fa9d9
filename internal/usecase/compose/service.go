package compose

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/plateshare/feedsync/domain"
)

// Service handles posting a new recipe: trim-validate the draft, upload
// the optional image and insert the row.
type Service struct {
	recipeRepo domain.RecipeRepository
	uploader   domain.ImageUploader
	validate   *validator.Validate
}

// NewService will create a new compose service. The uploader may be nil
// when the caller never submits raw image bytes.
func NewService(r domain.RecipeRepository, u domain.ImageUploader) *Service {
	return &Service{
		recipeRepo: r,
		uploader:   u,
		validate:   validator.New(),
	}
}

// CanSubmit reports whether the draft would pass validation. Mirrors
// the form's submit gate, without raising.
func (s *Service) CanSubmit(draft domain.RecipeDraft) bool {
	trim(&draft)
	return s.validate.Struct(&draft) == nil
}

// Submit validates the draft and inserts the recipe. Blank title or
// description fails before any network call. When imageData is
// non-empty it is uploaded first and the resulting URL replaces the
// draft's ImageURL.
func (s *Service) Submit(ctx context.Context, draft domain.RecipeDraft, imageData []byte, contentType string) error {
	trim(&draft)
	if err := s.validate.Struct(&draft); err != nil {
		return &domain.ValidationError{Fields: blankFields(draft)}
	}

	if len(imageData) > 0 && s.uploader != nil {
		url, err := s.uploader.Upload(ctx, imageData, contentType)
		if err != nil {
			logrus.Errorf("failed to upload recipe image: %v", err)
			return err
		}
		draft.ImageURL = url
	}

	return s.recipeRepo.Store(ctx, &draft)
}

func trim(d *domain.RecipeDraft) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
}

func blankFields(d domain.RecipeDraft) []string {
	var fields []string
	if d.Title == "" {
		fields = append(fields, "title")
	}
	if d.Description == "" {
		fields = append(fields, "description")
	}
	if len(fields) == 0 {
		fields = append(fields, "draft")
	}
	return fields
}
