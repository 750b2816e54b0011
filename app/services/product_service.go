package services

import (
	"SalesDashboard/app/forms"
	"SalesDashboard/app/models"
	"SalesDashboard/app/store"

	"go.uber.org/zap"
)

// ProductService handles product records
type ProductService struct {
	notifier
	products *store.Collection[models.Product]
	log      *zap.Logger
}

// NewProductService creates a new product service over the given collection
func NewProductService(products *store.Collection[models.Product], out Notifier, log *zap.Logger) *ProductService {
	return &ProductService{
		notifier: notifier{entity: "product", out: out},
		products: products,
		log:      log.Named("products"),
	}
}

// NewProductForm returns an empty create form
func (s *ProductService) NewProductForm() *forms.Form[models.ProductInput] {
	return forms.New(models.ProductFields, models.ProductFromForm, "Add Product")
}

// EditProductForm returns a form seeded with the product's current values
func (s *ProductService) EditProductForm(id int) (*forms.Form[models.ProductInput], error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	form := forms.New(models.ProductFields, models.ProductFromForm, "Update Product")
	return form.Seed(product.FormData()), nil
}

// GetProducts gets the products whose name matches term
func (s *ProductService) GetProducts(term string) store.View[models.Product] {
	return s.products.View(term)
}

// GetProduct gets a product by ID
func (s *ProductService) GetProduct(id int) (models.Product, error) {
	product, ok := s.products.Get(id)
	if !ok {
		return models.Product{}, notFound("Product", id)
	}
	return product, nil
}

// CreateProduct validates a submitted form and adds the product at the top of the list
func (s *ProductService) CreateProduct(values forms.Values) (models.Product, Outcome, error) {
	form := s.NewProductForm()
	form.SetAll(values)

	var created models.Product
	err := form.Submit(func(in models.ProductInput) error {
		created = s.products.Add(func(id int) models.Product {
			return models.NewProduct(id, in)
		})
		return nil
	})
	if err != nil {
		return models.Product{}, Outcome{}, s.fail(0, err)
	}

	s.log.Info("Product created", zap.Int("id", created.ID), zap.String("name", created.Name))
	return created, s.succeed(ActionCreated, created.ID, "Product added successfully"), nil
}

// UpdateProduct replaces name, prices, quantity and status of a product
func (s *ProductService) UpdateProduct(id int, values forms.Values) (models.Product, Outcome, error) {
	form, err := s.EditProductForm(id)
	if err != nil {
		return models.Product{}, Outcome{}, s.fail(id, err)
	}
	form.SetAll(values)

	var updated models.Product
	err = form.Submit(func(in models.ProductInput) error {
		var err error
		updated, err = s.products.Update(id, func(p *models.Product) error {
			in.ApplyTo(p)
			return nil
		})
		if err == store.ErrNotFound {
			return notFound("Product", id)
		}
		return err
	})
	if err != nil {
		return models.Product{}, Outcome{}, s.fail(id, err)
	}

	s.log.Info("Product updated", zap.Int("id", id))
	return updated, s.succeed(ActionUpdated, id, "Product updated successfully"), nil
}

// DeleteProduct removes a product. Existing sale lines keep the product name.
func (s *ProductService) DeleteProduct(id int) (models.Product, Outcome, error) {
	removed, err := s.products.Remove(id)
	if err != nil {
		return models.Product{}, Outcome{}, s.fail(id, notFound("Product", id))
	}

	s.log.Info("Product deleted", zap.Int("id", id))
	return removed, s.succeed(ActionDeleted, id, removed.Name+" deleted successfully"), nil
}
