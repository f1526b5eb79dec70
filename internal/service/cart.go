package service

import (
	"context"
	"fmt"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"

	"github.com/google/uuid"
)

// CartService is the storefront-facing boundary of abandoned-cart tracking:
// the shop calls Track on add-to-cart and MarkRecovered when an order is
// created for the same email.
type CartService interface {
	Track(ctx context.Context, req *dto.TrackCartRequest) (*model.AbandonedCart, error)
	MarkRecovered(ctx context.Context, userEmail, orderID string) error
}

type cartServiceImpl struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartServiceImpl{
		cartRepo: cartRepo,
	}
}

func (s *cartServiceImpl) Track(ctx context.Context, req *dto.TrackCartRequest) (*model.AbandonedCart, error) {
	if req.UserEmail == "" {
		return nil, fmt.Errorf("user_email is required")
	}

	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	encoded, err := model.EncodeLineItems(items)
	if err != nil {
		return nil, err
	}
	// Round-trip through the validator so a malformed item is rejected
	// here instead of inside a job later.
	if _, err := model.DecodeLineItems(encoded); err != nil {
		return nil, err
	}

	cart := &model.AbandonedCart{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		UserEmail:     req.UserEmail,
		UserName:      req.UserName,
		Items:         encoded,
		CartTotal:     model.ItemsTotal(items),
		Status:        model.CartStatusAbandoned,
		RecoveryToken: uuid.NewString(),
	}

	tracked, err := s.cartRepo.Track(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("track cart: %w", err)
	}

	return tracked, nil
}

func (s *cartServiceImpl) MarkRecovered(ctx context.Context, userEmail, orderID string) error {
	if userEmail == "" {
		return fmt.Errorf("user_email is required")
	}

	if err := s.cartRepo.MarkRecovered(ctx, userEmail, orderID); err != nil {
		return fmt.Errorf("mark cart recovered: %w", err)
	}

	return nil
}
