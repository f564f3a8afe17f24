// File: internal/services/template_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/draftmail/internal/domain"
	templaterepo "github.com/avelar/draftmail/internal/repository/template"
	"github.com/avelar/draftmail/internal/services/style"
	templateservice "github.com/avelar/draftmail/internal/services/template"
	"github.com/avelar/draftmail/internal/services/user_services"
)

// TemplateService manages user-curated style-reference templates. Saving a
// template runs the style extractor over its markup and stores the derived
// profile alongside the source.
type TemplateService struct {
	identity     *user_services.IdentityService
	templateRepo templaterepo.TemplateRepository
	logger       Logger
}

func NewTemplateService(identity *user_services.IdentityService, templateRepo templaterepo.TemplateRepository, logger Logger) (*TemplateService, error) {
	if identity == nil {
		return nil, templateservice.NewValidationError("constructor", "identity service is required")
	}
	if templateRepo == nil {
		return nil, templateservice.NewValidationError("constructor", "template repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &TemplateService{identity: identity, templateRepo: templateRepo, logger: logger}, nil
}

// SaveTemplate stores a new template with its computed style profile and
// returns the storage reference.
func (s *TemplateService) SaveTemplate(ctx context.Context, credential, name, description, htmlCode, tsxCode string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", templateservice.NewValidationError("save_template", "template name is required")
	}
	if strings.TrimSpace(htmlCode) == "" {
		return "", templateservice.NewValidationError("save_template", "template markup is required")
	}

	userID, err := s.identity.ResolveOrCreateUser(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return "", templateservice.NewAuthenticationError("save_template")
		}
		return "", templateservice.NewStoreError("save_template", "could not resolve caller identity", err)
	}

	profile := style.ExtractProfile(htmlCode)
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", templateservice.NewStoreError("save_template", "could not encode style profile", err)
	}

	sourceKind := domain.TemplateSourceHTML
	if tsxCode != "" {
		sourceKind = domain.TemplateSourceBoth
	}

	now := time.Now()
	row := &domain.EmailTemplate{
		PublicID:     uuid.NewString(),
		OwnerUserID:  userID,
		Name:         name,
		Description:  description,
		SourceKind:   sourceKind,
		HTMLCode:     htmlCode,
		TSXCode:      tsxCode,
		StyleProfile: profileJSON,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.templateRepo.Create(ctx, row); err != nil {
		return "", templateservice.NewStoreError("save_template", "could not insert template", err)
	}

	s.logger.Info("template saved", "template_id", row.PublicID)
	return row.PublicID, nil
}

// ListTemplates returns the caller's templates, newest updated first.
// Anonymous callers get an empty list.
func (s *TemplateService) ListTemplates(ctx context.Context, credential string) ([]domain.EmailTemplate, error) {
	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return []domain.EmailTemplate{}, nil
		}
		return nil, templateservice.NewStoreError("list_templates", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return []domain.EmailTemplate{}, nil
	}

	templates, err := s.templateRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, templateservice.NewStoreError("list_templates", "could not load templates", err)
	}
	return templates, nil
}

// DeleteTemplate removes one of the caller's templates. A missing record
// and a foreign-owned record fail identically.
func (s *TemplateService) DeleteTemplate(ctx context.Context, credential, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return templateservice.NewValidationError("delete_template", "template id is required")
	}

	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return templateservice.NewAuthenticationError("delete_template")
		}
		return templateservice.NewStoreError("delete_template", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return templateservice.NewUnauthorizedError("delete_template", userID)
	}

	existing, err := s.templateRepo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, templaterepo.ErrTemplateNotFound) {
			return templateservice.NewUnauthorizedError("delete_template", userID)
		}
		return templateservice.NewStoreError("delete_template", "could not load template", err)
	}
	if existing.OwnerUserID != userID {
		return templateservice.NewUnauthorizedError("delete_template", userID)
	}

	if err := s.templateRepo.Delete(ctx, existing.ID); err != nil {
		return templateservice.NewStoreError("delete_template", "could not delete template", err)
	}
	return nil
}

// StyleReferences resolves the requested templates to their style
// reference views, silently dropping any template the caller does not own.
// Anonymous callers and empty id lists get an empty result.
func (s *TemplateService) StyleReferences(ctx context.Context, credential string, publicIDs []string) ([]templateservice.StyleReference, error) {
	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return []templateservice.StyleReference{}, nil
		}
		return nil, templateservice.NewStoreError("style_references", "could not resolve caller identity", err)
	}
	if userID == 0 || len(publicIDs) == 0 {
		return []templateservice.StyleReference{}, nil
	}

	rows, err := s.templateRepo.FindByPublicIDs(ctx, publicIDs, userID)
	if err != nil {
		return nil, templateservice.NewStoreError("style_references", "could not load templates", err)
	}

	references := make([]templateservice.StyleReference, 0, len(rows))
	for _, row := range rows {
		var profile domain.StyleProfile
		if len(row.StyleProfile) > 0 {
			if err := json.Unmarshal(row.StyleProfile, &profile); err != nil {
				return nil, templateservice.NewStoreError("style_references", "stored style profile is corrupt", err)
			}
		}
		references = append(references, templateservice.StyleReference{
			ID:           row.PublicID,
			Name:         row.Name,
			Description:  row.Description,
			HTMLCode:     row.HTMLCode,
			StyleProfile: profile,
		})
	}

	return references, nil
}
