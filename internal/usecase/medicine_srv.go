package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhive/internal/apperr"
	"healthhive/internal/authz"
	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"
	"healthhive/internal/dto/request"
	"healthhive/internal/dto/response"
	"healthhive/internal/gateway"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

const unknownSeller = "Unknown Seller"

type ListingService interface {
	Create(ctx context.Context, caller string, req *request.CreateMedicineRequest) (*response.MedicineResponse, error)
	ListAll(ctx context.Context, category string) ([]response.MedicineResponse, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]response.MedicineResponse, error)
	ListDiscounted(ctx context.Context) ([]response.MedicineResponse, error)
	Update(ctx context.Context, id, caller string, req *request.UpdateMedicineRequest) (*response.MedicineResponse, error)
	Delete(ctx context.Context, id, caller string, req *request.DeleteMedicineRequest) error

	// Admin only
	AdminUpdate(ctx context.Context, id, admin string, req *request.UpdateMedicineRequest) (*response.MedicineResponse, error)
	AdminDelete(ctx context.Context, id, admin string) error
}

type listingService struct {
	medicineRepo repository.MedicineRepository
	policy       *authz.Policy
	events       events
	log          *zap.Logger
	now          func() time.Time
}

func NewListingService(deps Dependencies) ListingService {
	log := deps.Log.With(zap.String("service", "listing"))
	return &listingService{
		medicineRepo: deps.Repo.Medicine,
		policy:       deps.Policy,
		events:       events{publisher: deps.Events, log: log},
		log:          log,
		now:          time.Now,
	}
}

// Create posts a listing owned by the caller, who must hold the seller role.
func (s *listingService) Create(ctx context.Context, caller string, req *request.CreateMedicineRequest) (*response.MedicineResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create medicine validation failed", zap.Error(err))
		return nil, err
	}
	if req.SellerEmail != caller {
		s.log.Warn("Listing owner does not match caller",
			zap.String("caller", caller),
			zap.String("seller_email", req.SellerEmail),
		)
		return nil, fmt.Errorf("%w: only sellers can post medicine for themselves", apperr.ErrForbidden)
	}

	seller, err := s.policy.RequireRole(ctx, caller, entity.RoleSeller)
	if err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			return nil, fmt.Errorf("%w: only sellers can post medicine", apperr.ErrForbidden)
		}
		return nil, err
	}

	sellerName := req.SellerName
	if sellerName == "" {
		sellerName = seller.Name
	}
	if sellerName == "" {
		sellerName = unknownSeller
	}

	now := s.now().UTC()
	medicine := &entity.Medicine{
		ID:          utils.NewID(),
		SellerID:    req.SellerID,
		SellerEmail: seller.Email,
		SellerName:  sellerName,
		Name:        req.Name,
		GenericName: req.GenericName,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Company:     req.Company,
		MassUnit:    req.MassUnit,
		Price:       req.Price,
		Discount:    req.Discount,
		CreatedTime: now,
		UpdatedTime: now,
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, internalErr(s.log, "failed to create medicine", err)
	}

	s.log.Info("Medicine created",
		zap.String("medicine_id", medicine.ID),
		zap.String("seller_email", medicine.SellerEmail),
	)
	s.events.publish(ctx, gateway.EventListingCreated, medicine.ID, map[string]any{
		"seller_email": medicine.SellerEmail,
		"name":         medicine.Name,
		"category":     medicine.Category,
	})

	resp := response.MedicineToResponse(medicine)
	return &resp, nil
}

func (s *listingService) ListAll(ctx context.Context, category string) ([]response.MedicineResponse, error) {
	return s.find(ctx, repository.MedicineFilter{Category: category})
}

func (s *listingService) ListBySeller(ctx context.Context, sellerEmail string) ([]response.MedicineResponse, error) {
	if sellerEmail == "" {
		return nil, apperr.Validation("missing seller email", map[string]string{"email": "This field is required"})
	}
	return s.find(ctx, repository.MedicineFilter{SellerEmail: sellerEmail})
}

func (s *listingService) ListDiscounted(ctx context.Context) ([]response.MedicineResponse, error) {
	return s.find(ctx, repository.MedicineFilter{DiscountedOnly: true})
}

func (s *listingService) Update(ctx context.Context, id, caller string, req *request.UpdateMedicineRequest) (*response.MedicineResponse, error) {
	if err := validID("medicine", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	medicine, err := s.ownedListing(ctx, id, caller, req.SellerEmail)
	if err != nil {
		return nil, err
	}

	medicine.Apply(patchFromRequest(req), s.now().UTC())
	if err := s.save(ctx, medicine); err != nil {
		return nil, err
	}

	s.log.Info("Medicine updated", zap.String("medicine_id", id), zap.String("seller_email", caller))
	resp := response.MedicineToResponse(medicine)
	return &resp, nil
}

func (s *listingService) Delete(ctx context.Context, id, caller string, req *request.DeleteMedicineRequest) error {
	if err := validID("medicine", id); err != nil {
		return err
	}

	claimed := ""
	if req != nil {
		claimed = req.SellerEmail
	}
	if _, err := s.ownedListing(ctx, id, caller, claimed); err != nil {
		return err
	}

	return s.remove(ctx, id, caller)
}

func (s *listingService) AdminUpdate(ctx context.Context, id, admin string, req *request.UpdateMedicineRequest) (*response.MedicineResponse, error) {
	if err := validID("medicine", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return nil, err
	}

	medicine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	medicine.Apply(patchFromRequest(req), s.now().UTC())
	if err := s.save(ctx, medicine); err != nil {
		return nil, err
	}

	s.log.Info("Medicine updated by admin", zap.String("medicine_id", id), zap.String("admin", admin))
	resp := response.MedicineToResponse(medicine)
	return &resp, nil
}

func (s *listingService) AdminDelete(ctx context.Context, id, admin string) error {
	if err := validID("medicine", id); err != nil {
		return err
	}
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return err
	}
	return s.remove(ctx, id, admin)
}

// ownedListing applies the ownership rule: the caller must be a seller and
// the listing's owner. A body-supplied email that differs from the caller is
// rejected rather than trusted.
func (s *listingService) ownedListing(ctx context.Context, id, caller, claimed string) (*entity.Medicine, error) {
	if claimed != "" && claimed != caller {
		return nil, fmt.Errorf("%w: seller_email does not match the authenticated user", apperr.ErrForbidden)
	}
	if _, err := s.policy.RequireRole(ctx, caller, entity.RoleSeller); err != nil {
		return nil, err
	}

	medicine, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !medicine.OwnedBy(caller) {
		s.log.Warn("Listing ownership check failed",
			zap.String("medicine_id", id),
			zap.String("caller", caller),
		)
		return nil, fmt.Errorf("%w: you are not authorized to modify this medicine", apperr.ErrForbidden)
	}
	return medicine, nil
}

func (s *listingService) load(ctx context.Context, id string) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr(s.log, "failed to load medicine", err)
	}
	if medicine == nil {
		return nil, fmt.Errorf("%w: medicine not found", apperr.ErrNotFound)
	}
	return medicine, nil
}

func (s *listingService) save(ctx context.Context, medicine *entity.Medicine) error {
	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: medicine not found", apperr.ErrNotFound)
		}
		return internalErr(s.log, "failed to update medicine", err)
	}
	return nil
}

func (s *listingService) remove(ctx context.Context, id, by string) error {
	if err := s.medicineRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: medicine not found", apperr.ErrNotFound)
		}
		return internalErr(s.log, "failed to delete medicine", err)
	}

	s.log.Info("Medicine deleted", zap.String("medicine_id", id), zap.String("by", by))
	s.events.publish(ctx, gateway.EventListingDeleted, id, map[string]any{"deleted_by": by})
	return nil
}

func (s *listingService) find(ctx context.Context, filter repository.MedicineFilter) ([]response.MedicineResponse, error) {
	medicines, err := s.medicineRepo.Find(ctx, filter)
	if err != nil {
		return nil, internalErr(s.log, "failed to list medicines", err)
	}
	return response.MedicinesToResponse(medicines), nil
}

func patchFromRequest(req *request.UpdateMedicineRequest) entity.MedicinePatch {
	return entity.MedicinePatch{
		SellerName:  req.SellerName,
		Name:        req.Name,
		GenericName: req.GenericName,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Company:     req.Company,
		MassUnit:    req.MassUnit,
		Price:       req.Price,
		Discount:    req.Discount,
	}
}
