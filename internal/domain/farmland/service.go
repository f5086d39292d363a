package farmland

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/pkg/storage"
)

const uploadURLTTL = 15 * time.Minute

// Service handles farmland business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	storage  storage.Storage // nil if object storage disabled
	policy   CarbonPolicy
}

// NewService creates farmland service
func NewService(repo Repository, userRepo user.Repository, store storage.Storage, policy CarbonPolicy) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		storage:  store,
		policy:   policy,
	}
}

// Policy returns the carbon estimation policy
func (s *Service) Policy() CarbonPolicy {
	return s.policy
}

// Create registers a new parcel for a verified farmer. It enters review as
// pending regardless of the farmer's own verification.
func (s *Service) Create(ctx context.Context, farmerID uuid.UUID, req *CreateFarmlandRequest) (*Farmland, error) {
	u, err := s.userRepo.GetByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanCreateListing() {
		return nil, ErrOnlyFarmersCanAdd
	}

	f := &Farmland{
		ID:                uuid.New(),
		FarmerID:          farmerID,
		Name:              req.Name,
		Location:          req.Location,
		AreaHectares:      req.AreaHectares,
		LandType:          LandType(req.LandType),
		CultivationMethod: CultivationMethod(req.CultivationMethod),
		Status:            StatusPending,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	log.Info().
		Str("farmland_id", f.ID.String()).
		Str("farmer_id", farmerID.String()).
		Float64("area_hectares", f.AreaHectares).
		Msg("farmland registered")

	return f, nil
}

// ListMine returns the caller's parcels, newest first
func (s *Service) ListMine(ctx context.Context, farmerID uuid.UUID) ([]*Farmland, error) {
	return s.repo.ListByFarmer(ctx, farmerID)
}

// GetByID returns a parcel visible to its owner or an admin
func (s *Service) GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole string) (*Farmland, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFarmlandNotFound
	}

	if f.FarmerID != callerID && callerRole != string(user.RoleAdmin) {
		return nil, ErrNotOwner
	}
	return f, nil
}

// DocumentUploadURL returns a presigned PUT URL for an ownership document.
// The client uploads directly to the bucket and then attaches the key.
func (s *Service) DocumentUploadURL(ctx context.Context, id, farmerID uuid.UUID, req *UploadDocumentRequest) (*UploadDocumentResponse, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFarmlandNotFound
	}
	if f.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	key := fmt.Sprintf("farmlands/%s/%s%s", f.ID, uuid.New(), sanitizeExt(req.Filename))
	url, err := s.storage.PresignUpload(ctx, key, req.ContentType, uploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadDocumentResponse{
		UploadURL: url,
		Key:       key,
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}

// AttachDocument records an uploaded document key on the parcel
func (s *Service) AttachDocument(ctx context.Context, id, farmerID uuid.UUID, key string) (*Farmland, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFarmlandNotFound
	}
	if f.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	if s.storage != nil {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check document: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("document not uploaded: %s", key)
		}
	}

	if err := s.repo.AttachDocument(ctx, f.ID, key); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, f.ID)
}

// sanitizeExt keeps only a safe file extension from the client filename
func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
