package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var (
	ErrOptionNotFound      = errors.New("option not found in catalog")
	ErrOptionNotActive     = errors.New("option is deactivated")
	ErrOptionAlreadyAdded  = errors.New("option already attached to this order")
	ErrOrderAlreadyShipped = errors.New("order already shipped")
	ErrInvalidOptionInput  = errors.New("invalid option input")
)

// OptionAttachmentResult is the full current set of attached options plus
// their summed total after an attach or list call.
type OptionAttachmentResult struct {
	Options           []entities.OrderOption
	TotalOptionsPrice decimal.Decimal
}

// IOptionUseCase attaches premium catalog options to an order.
//
// A batch is all-or-nothing: the first failing option aborts the whole call
// and nothing from it is attached. Options attached by earlier calls stay.
// The catalog price is frozen onto the OrderOption at attach time; the
// order's base snapshot is read-only here.
type IOptionUseCase interface {
	AddOptions(ctx context.Context, orderID string, optionIDs []string) (OptionAttachmentResult, error)
	ListOptions(ctx context.Context, orderID string) (OptionAttachmentResult, error)
}

type OptionUseCase struct {
	repo      interfaces.IOrderOptionRepository
	orderRepo interfaces.IOrderRepository
	catalog   interfaces.IOptionCatalog
}

var _ IOptionUseCase = (*OptionUseCase)(nil)

func NewOptionUseCase(repo interfaces.IOrderOptionRepository, orderRepo interfaces.IOrderRepository, catalog interfaces.IOptionCatalog) *OptionUseCase {
	return &OptionUseCase{repo: repo, orderRepo: orderRepo, catalog: catalog}
}

func (u *OptionUseCase) AddOptions(ctx context.Context, orderID string, optionIDs []string) (OptionAttachmentResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || len(optionIDs) == 0 {
		return OptionAttachmentResult{}, ErrInvalidOptionInput
	}

	log.Printf("[option][usecase] attach start order_id=%s count=%d", orderID, len(optionIDs))
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return OptionAttachmentResult{}, err
	}
	if order.ID == "" {
		return OptionAttachmentResult{}, ErrOrderNotFound
	}
	if order.HasShipped() {
		log.Printf("[option][usecase] attach rejected order_id=%s status=%s", orderID, order.Status)
		return OptionAttachmentResult{}, fmt.Errorf("%w: order %s is %s", ErrOrderAlreadyShipped, orderID, order.Status)
	}

	existing, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OptionAttachmentResult{}, err
	}
	attached := make(map[string]bool, len(existing))
	for _, opt := range existing {
		attached[opt.OptionID] = true
	}

	now := time.Now().UTC()
	batch := make([]entities.OrderOption, 0, len(optionIDs))
	for _, rawID := range optionIDs {
		optionID := strings.TrimSpace(rawID)
		if optionID == "" {
			return OptionAttachmentResult{}, ErrInvalidOptionInput
		}
		if attached[optionID] {
			return OptionAttachmentResult{}, fmt.Errorf("%w: %s", ErrOptionAlreadyAdded, optionID)
		}

		cat, err := u.catalog.GetOption(ctx, optionID)
		if err != nil {
			return OptionAttachmentResult{}, err
		}
		if cat.ID == "" {
			return OptionAttachmentResult{}, fmt.Errorf("%w: %s", ErrOptionNotFound, optionID)
		}
		if !cat.Active {
			return OptionAttachmentResult{}, fmt.Errorf("%w: %s", ErrOptionNotActive, optionID)
		}

		// Price and label frozen here; later catalog changes are irrelevant.
		attached[optionID] = true
		batch = append(batch, entities.OrderOption{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			OptionID:   optionID,
			Label:      cat.Label,
			UnitPrice:  cat.Price,
			AttachedAt: now,
		})
	}

	created, err := u.repo.CreateBatch(ctx, batch)
	if err != nil {
		log.Printf("[option][usecase] attach persist failed order_id=%s err=%v", orderID, err)
		return OptionAttachmentResult{}, err
	}
	if created == nil {
		// A concurrent call attached one of the batch's options first.
		log.Printf("[option][usecase] attach raced order_id=%s", orderID)
		return OptionAttachmentResult{}, fmt.Errorf("%w: concurrent attachment on order %s", ErrOptionAlreadyAdded, orderID)
	}

	log.Printf("[option][usecase] attach success order_id=%s added=%d", orderID, len(created))
	return u.ListOptions(ctx, orderID)
}

func (u *OptionUseCase) ListOptions(ctx context.Context, orderID string) (OptionAttachmentResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return OptionAttachmentResult{}, ErrInvalidOptionInput
	}

	opts, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OptionAttachmentResult{}, err
	}

	total := decimal.Zero
	for _, opt := range opts {
		total = total.Add(opt.UnitPrice)
	}
	return OptionAttachmentResult{Options: opts, TotalOptionsPrice: total}, nil
}
