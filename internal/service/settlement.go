package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// settleDelivered credits each seller's wallet for the order's unsettled
// items. It runs inside the caller's transaction so that marking items
// settled and crediting wallets commit together; re-running it against the
// same order is a no-op because settled items are excluded up front.
func (s *orderServiceImpl) settleDelivered(ctx context.Context, tx *gorm.DB, orderID string) error {
	items, err := s.orderRepo.GetUnsettledItems(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("get unsettled items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	creditBySeller := make(map[string]int64)
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)

		sellerID := item.SellerID
		if sellerID == "" {
			// legacy rows predate the denormalized seller ref
			product, err := s.productRepo.FindByIDTx(ctx, tx, item.ProductID)
			if err == nil {
				sellerID = product.SellerID
			}
		}
		if sellerID == "" {
			// admin-owned product: marked settled, nothing to credit
			continue
		}

		creditBySeller[sellerID] += item.UnitPrice * item.Quantity
	}

	if err := s.orderRepo.MarkItemsSettled(ctx, tx, itemIDs); err != nil {
		return fmt.Errorf("mark items settled: %w", err)
	}

	for sellerID, amount := range creditBySeller {
		if err := s.sellerRepo.CreditWallet(ctx, tx, sellerID, amount); err != nil {
			return fmt.Errorf("credit seller %s: %w", sellerID, err)
		}
		s.log.Info("settled order items",
			"order_id", orderID, "seller_id", sellerID, "amount", amount)
	}

	return nil
}
