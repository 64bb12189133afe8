package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"shopping-cart/models"
)

const maxQuantity = math.MaxInt32

// CartService owns the line items of a single cart. Adding a productId that is
// already present merges cumulatively: the stored quantity grows by the new
// quantity while the first name and price are kept.
//
// Every method holds one mutex for its whole duration, so calls never
// interleave.
type CartService struct {
	mu    sync.Mutex
	items []models.LineItem
	index map[string]int
	now   func() time.Time

	// revision increases on every mutation.
	revision uint64
}

type CartOption func(*CartService)

// WithClock overrides the source of AddedAt/UpdatedAt stamps.
func WithClock(now func() time.Time) CartOption {
	return func(s *CartService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewCartService(opts ...CartOption) *CartService {
	s := &CartService{
		index: make(map[string]int),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of the items in insertion order.
func (s *CartService) List() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total()
}

// Count is the number of distinct products, not the sum of quantities.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Summary reads items, total and count under a single lock.
func (s *CartService) Summary() models.CartSummary {
	summary, _ := s.SummaryWithRevision()
	return summary
}

// SummaryWithRevision also returns the revision the summary was taken at.
func (s *CartService) SummaryWithRevision() (models.CartSummary, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CartSummary{
		Items:     s.snapshot(),
		Total:     s.total(),
		ItemCount: len(s.items),
	}, s.revision
}

// Revision identifies the current cart state. Two equal revisions mean no
// mutation happened in between.
func (s *CartService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *CartService) Find(productID string) (models.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return models.LineItem{}, false
	}
	return copyItem(s.items[i]), true
}

func (s *CartService) Add(in models.NewLineItem) (models.LineItem, error) {
	if err := validateNewItem(in); err != nil {
		return models.LineItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if i, ok := s.index[in.ProductID]; ok {
		merged := int64(s.items[i].Quantity) + int64(in.Quantity)
		if merged > maxQuantity {
			return models.LineItem{}, quantityTooLarge()
		}
		if !s.totalFits(i, s.items[i].UnitPrice, int(merged)) {
			return models.LineItem{}, totalTooLarge()
		}
		s.items[i].Quantity = int(merged)
		s.items[i].UpdatedAt = &now
		s.revision++
		return copyItem(s.items[i]), nil
	}

	if !s.totalFits(len(s.items), in.UnitPrice, in.Quantity) {
		return models.LineItem{}, totalTooLarge()
	}

	item := models.LineItem{
		ProductID: in.ProductID,
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
		Quantity:  in.Quantity,
		AddedAt:   now,
	}
	s.index[item.ProductID] = len(s.items)
	s.items = append(s.items, item)
	s.revision++
	return copyItem(item), nil
}

// UpdateQuantity replaces the quantity of an existing item. A zero quantity is
// treated as absent.
func (s *CartService) UpdateQuantity(productID string, quantity int) (models.LineItem, error) {
	switch {
	case quantity == 0:
		return models.LineItem{}, missingFields("quantity")
	case quantity < 0:
		return models.LineItem{}, nonPositive("quantity")
	case quantity > maxQuantity:
		return models.LineItem{}, quantityTooLarge()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return models.LineItem{}, &NotFoundError{ProductID: productID}
	}
	if !s.totalFits(i, s.items[i].UnitPrice, quantity) {
		return models.LineItem{}, totalTooLarge()
	}
	now := s.now()
	s.items[i].Quantity = quantity
	s.items[i].UpdatedAt = &now
	s.revision++
	return copyItem(s.items[i]), nil
}

func (s *CartService) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return &NotFoundError{ProductID: productID}
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, productID)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ProductID] = j
	}
	s.revision++
	return nil
}

func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[string]int)
	s.revision++
}

// Reset empties the cart for test fixtures.
func (s *CartService) Reset() {
	s.Clear()
}

func (s *CartService) snapshot() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	for i, item := range s.items {
		out[i] = copyItem(item)
	}
	return out
}

func (s *CartService) total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// totalFits reports whether the cart total stays finite once the line at
// position pos holds quantity units at price. pos == len(s.items) means a new
// line appended at the end.
func (s *CartService) totalFits(pos int, price float64, quantity int) bool {
	subtotal := price * float64(quantity)
	if math.IsInf(subtotal, 0) {
		return false
	}
	var total float64
	for i, item := range s.items {
		if i == pos {
			total += subtotal
			continue
		}
		total += item.Subtotal()
	}
	if pos == len(s.items) {
		total += subtotal
	}
	return !math.IsInf(total, 0)
}

func copyItem(item models.LineItem) models.LineItem {
	if item.UpdatedAt != nil {
		t := *item.UpdatedAt
		item.UpdatedAt = &t
	}
	return item
}

func validateNewItem(in models.NewLineItem) error {
	var missing []string
	if strings.TrimSpace(in.ProductID) == "" {
		missing = append(missing, "productId")
	}
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.UnitPrice == 0 {
		missing = append(missing, "price")
	}
	if in.Quantity == 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return missingFields(missing...)
	}

	if math.IsNaN(in.UnitPrice) || math.IsInf(in.UnitPrice, 0) {
		return &ValidationError{
			Kind:    KindOutOfRange,
			Fields:  []string{"price"},
			Message: "price must be a finite number",
		}
	}

	var nonPos []string
	if in.UnitPrice < 0 {
		nonPos = append(nonPos, "price")
	}
	if in.Quantity < 0 {
		nonPos = append(nonPos, "quantity")
	}
	if len(nonPos) > 0 {
		return nonPositive(nonPos...)
	}

	if in.Quantity > maxQuantity {
		return quantityTooLarge()
	}
	return nil
}
