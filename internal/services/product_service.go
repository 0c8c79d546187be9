package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EventPublisher publishes product lifecycle events to a message broker.
type EventPublisher interface {
	PublishProductEvent(action string, product map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher // may be nil when no broker is configured
	log    zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID, (nil, nil) when absent.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct persists a new product and returns the stored entity with
// generated ID and timestamps.
func (s *ProductService) CreateProduct(name, description string, price decimal.Decimal, quantity int) (*models.Product, error) {
	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish("created", product)
	return product, nil
}

// UpdateProduct applies a partial update to an existing product and returns
// the updated entity.
func (s *ProductService) UpdateProduct(product *models.Product, changes repositories.ProductUpdate) (*models.Product, error) {
	updated, err := s.repo.Update(product, changes)
	if err != nil {
		return nil, err
	}
	s.publish("updated", updated)
	return updated, nil
}

// DeleteProduct removes an existing product.
func (s *ProductService) DeleteProduct(product *models.Product) error {
	if err := s.repo.Delete(product); err != nil {
		return err
	}
	s.publish("deleted", product)
	return nil
}

// publish emits a product lifecycle event best-effort: a broker failure is
// logged and never fails the operation itself.
func (s *ProductService) publish(action string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":       product.ID,
		"name":     product.Name,
		"price":    product.Price.StringFixed(2),
		"quantity": product.Quantity,
	}
	if err := s.events.PublishProductEvent(action, payload); err != nil {
		s.log.Error().Err(err).
			Str("action", action).
			Str("product_id", product.ID).
			Msg("failed to publish product event")
	}
}
