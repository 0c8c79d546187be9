// Package resolvers implements the query and mutation operations of the
// catalog API. Each operation validates its input in a fixed order, so
// error messages are deterministic, then delegates persistence to the
// repositories and maps results to their public views.
package resolvers

import (
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Resolver composes the repositories and services behind the API
// operations. One instance serves all requests; it holds no per-request
// state.
type Resolver struct {
	users    repositories.UserRepository
	products *services.ProductService
	auth     *services.AuthService
	validate *validator.Validate
	log      zerolog.Logger
}

// New creates a new Resolver.
func New(users repositories.UserRepository, products *services.ProductService, auth *services.AuthService, log zerolog.Logger) *Resolver {
	return &Resolver{
		users:    users,
		products: products,
		auth:     auth,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterInput are the arguments of the register mutation.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput are the arguments of the login mutation.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProductInput are the arguments of the createProduct mutation.
// Price and Quantity are pointers so an absent field is distinguishable
// from a zero value.
type CreateProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

// UpdateProductInput are the arguments of the updateProduct mutation; every
// field is optional and absent fields keep their stored values.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

// Empty reports whether the input sets no field at all.
func (in UpdateProductInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil && in.Quantity == nil
}

// Register creates a new account with role USER. The store's uniqueness
// constraints remain the authoritative arbiter when two registrations race
// past the lookups below.
func (r *Resolver) Register(input RegisterInput) (*UserView, error) {
	if input.Username == "" {
		return nil, apperrors.Validation("username required")
	}
	if len(input.Username) < 3 {
		return nil, apperrors.Validation("username must be at least 3 characters")
	}
	if input.Email == "" {
		return nil, apperrors.Validation("email required")
	}
	if err := r.validate.Var(input.Email, "email"); err != nil {
		return nil, apperrors.Validation("invalid email format")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.Validation("password required (min 6)")
	}

	existing, err := r.users.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Username already exists")
	}
	existing, err = r.users.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Email already exists")
	}

	user, err := r.auth.RegisterUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	view := newUserView(user)
	return &view, nil
}

// Login authenticates a user and issues a token. A wrong password and an
// unknown username yield the identical error.
func (r *Resolver) Login(input LoginInput) (*LoginResult, error) {
	if input.Username == "" {
		return nil, apperrors.Validation("username required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.Validation("password required (min 6)")
	}

	user, err := r.auth.Authenticate(input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.InvalidCredentials("Invalid credentials")
	}

	token, err := r.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  newUserView(user),
	}, nil
}

// Me returns the public view of the authenticated caller.
func (r *Resolver) Me(req Request) (*UserView, error) {
	claims, err := r.RequireAuthenticated(req)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The token subject no longer exists.
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	view := newUserView(user)
	return &view, nil
}

// Products returns the full product list, newest first. Any authenticated
// role may call it.
func (r *Resolver) Products(req Request) ([]ProductView, error) {
	if _, err := r.RequireAuthenticated(req); err != nil {
		return nil, err
	}

	products, err := r.products.GetAllProducts()
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views, nil
}

// ProductByID returns a single product.
func (r *Resolver) ProductByID(req Request, id string) (*ProductView, error) {
	if _, err := r.RequireAuthenticated(req); err != nil {
		return nil, err
	}

	product, err := r.products.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}

	view := newProductView(product)
	return &view, nil
}

// CreateProduct validates each field with a field-specific message and
// persists a new product. The name is trimmed of surrounding whitespace
// before validation and storage.
func (r *Resolver) CreateProduct(req Request, input CreateProductInput) (*ProductView, error) {
	if _, err := r.RequireAuthenticated(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, apperrors.Validation("name must be at least 2 characters")
	}
	if input.Price == nil || input.Price.IsNegative() {
		return nil, apperrors.Validation("price must be zero or greater")
	}
	if input.Quantity == nil || *input.Quantity < 0 {
		return nil, apperrors.Validation("quantity must be zero or greater")
	}

	product, err := r.products.CreateProduct(name, input.Description, *input.Price, *input.Quantity)
	if err != nil {
		return nil, err
	}

	view := newProductView(product)
	return &view, nil
}

// UpdateProduct applies a partial update. An input with every field absent,
// like an input with an invalid present field, is rejected with the same
// generic validation error.
func (r *Resolver) UpdateProduct(req Request, id string, input UpdateProductInput) (*ProductView, error) {
	if _, err := r.RequireAuthenticated(req); err != nil {
		return nil, err
	}

	if input.Empty() {
		return nil, apperrors.Validation("invalid product input")
	}
	changes := repositories.ProductUpdate{
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			return nil, apperrors.Validation("invalid product input")
		}
		changes.Name = &name
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, apperrors.Validation("invalid product input")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, apperrors.Validation("invalid product input")
	}

	product, err := r.products.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("Product not found")
	}

	updated, err := r.products.UpdateProduct(product, changes)
	if err != nil {
		return nil, err
	}

	view := newProductView(updated)
	return &view, nil
}

// DeleteProduct removes a product. Only callers holding the ADMIN role may
// delete.
func (r *Resolver) DeleteProduct(req Request, id string) (bool, error) {
	if _, err := r.RequireRole(req, models.RoleAdmin); err != nil {
		return false, err
	}

	product, err := r.products.GetProductByID(id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, apperrors.NotFound("Product not found")
	}

	if err := r.products.DeleteProduct(product); err != nil {
		return false, err
	}
	r.log.Info().Str("product_id", id).Msg("product deleted")
	return true, nil
}
