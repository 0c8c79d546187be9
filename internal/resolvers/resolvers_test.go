package resolvers_test

import (
	"testing"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/resolvers"
	"catalog/internal/services"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test_jwt_secret"

// setupResolver wires a resolver over in-memory repositories.
func setupResolver(t *testing.T) (*resolvers.Resolver, *repositories.MockUserRepository, *services.AuthService) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()

	authService, err := services.NewAuthService(userRepo, testJWTSecret, 30*time.Minute)
	assert.NoError(t, err)
	productService := services.NewProductService(productRepo, nil, zerolog.Nop())

	resolver := resolvers.New(userRepo, productService, authService, zerolog.Nop())
	return resolver, userRepo, authService
}

func registerAndLogin(t *testing.T, r *resolvers.Resolver, username, email, password string) string {
	t.Helper()
	_, err := r.Register(resolvers.RegisterInput{Username: username, Email: email, Password: password})
	assert.NoError(t, err)
	result, err := r.Login(resolvers.LoginInput{Username: username, Password: password})
	assert.NoError(t, err)
	return result.Token
}

// adminToken seeds an ADMIN user directly (there is no public path to an
// elevated role) and logs it in.
func adminToken(t *testing.T, r *resolvers.Resolver, users *repositories.MockUserRepository, auth *services.AuthService) string {
	t.Helper()
	hash, err := auth.HashPassword("adminpass")
	assert.NoError(t, err)
	err = users.Create(&models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	assert.NoError(t, err)
	result, err := r.Login(resolvers.LoginInput{Username: "admin", Password: "adminpass"})
	assert.NoError(t, err)
	return result.Token
}

func bearer(token string) resolvers.Request {
	return resolvers.Request{Authorization: "Bearer " + token}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func TestRegister(t *testing.T) {
	r, _, _ := setupResolver(t)

	user, err := r.Register(resolvers.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)

	// Every registration gets a distinct generated id.
	other, err := r.Register(resolvers.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, user.ID, other.ID)
}

func TestRegister_ValidationOrder(t *testing.T) {
	r, _, _ := setupResolver(t)

	cases := []struct {
		name    string
		input   resolvers.RegisterInput
		message string
	}{
		{"empty username", resolvers.RegisterInput{Email: "a@b.com", Password: "secret1"}, "username required"},
		{"short username", resolvers.RegisterInput{Username: "ab", Email: "a@b.com", Password: "secret1"}, "username must be at least 3 characters"},
		{"empty email", resolvers.RegisterInput{Username: "alice", Password: "secret1"}, "email required"},
		{"bad email", resolvers.RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"}, "invalid email format"},
		{"empty password", resolvers.RegisterInput{Username: "alice", Email: "a@b.com"}, "password required (min 6)"},
		{"short password", resolvers.RegisterInput{Username: "alice", Email: "a@b.com", Password: "12345"}, "password required (min 6)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Register(tc.input)
			assert.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	r, _, _ := setupResolver(t)

	_, err := r.Register(resolvers.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	assert.NoError(t, err)

	// Same username fails even with a different email.
	_, err = r.Register(resolvers.RegisterInput{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "Username already exists", err.Error())

	// Same email with a different username also fails.
	_, err = r.Register(resolvers.RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "password123"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "Email already exists", err.Error())
}

func TestLogin(t *testing.T) {
	r, _, _ := setupResolver(t)

	_, err := r.Register(resolvers.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	assert.NoError(t, err)

	result, err := r.Login(resolvers.LoginInput{Username: "alice", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, models.RoleUser, result.User.Role)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	r, _, _ := setupResolver(t)

	_, err := r.Register(resolvers.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	assert.NoError(t, err)

	_, errWrongPassword := r.Login(resolvers.LoginInput{Username: "alice", Password: "wrongpass"})
	_, errUnknownUser := r.Login(resolvers.LoginInput{Username: "nobody", Password: "password123"})

	assert.Error(t, errWrongPassword)
	assert.Error(t, errUnknownUser)
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(errWrongPassword))
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(errUnknownUser))
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestLogin_Validation(t *testing.T) {
	r, _, _ := setupResolver(t)

	_, err := r.Login(resolvers.LoginInput{Password: "password123"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = r.Login(resolvers.LoginInput{Username: "alice", Password: "12345"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestMe(t *testing.T) {
	r, _, _ := setupResolver(t)

	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")

	user, err := r.Me(bearer(token))
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestMe_SubjectNoLongerExists(t *testing.T) {
	r, _, auth := setupResolver(t)

	// A valid token whose subject was never persisted.
	ghost := &models.User{
		ID:       "3f1f8a52-9c14-4b6e-90df-0a4a45b8a8de",
		Username: "ghost",
		Role:     models.RoleUser,
	}
	token, err := auth.IssueToken(ghost)
	assert.NoError(t, err)

	_, err = r.Me(bearer(token))
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestProducts_OrderedNewestFirst(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")
	req := bearer(token)

	for _, name := range []string{"P1", "P2", "P3"} {
		_, err := r.CreateProduct(req, resolvers.CreateProductInput{
			Name:     name,
			Price:    dec("10.00"),
			Quantity: intPtr(1),
		})
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	products, err := r.Products(req)
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "P3", products[0].Name)
	assert.Equal(t, "P2", products[1].Name)
	assert.Equal(t, "P1", products[2].Name)
}

func TestProductByID_NotFound(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")

	_, err := r.ProductByID(bearer(token), "3f1f8a52-9c14-4b6e-90df-0a4a45b8a8de")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateProduct(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")

	product, err := r.CreateProduct(bearer(token), resolvers.CreateProductInput{
		Name:        "  Laptop  ",
		Description: "High performance laptop",
		Price:       dec("1200.00"),
		Quantity:    intPtr(10),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Laptop", product.Name) // trimmed before storage
	assert.Equal(t, "1200.00", product.Price)
	assert.Equal(t, 10, product.Quantity)
	assert.NotEmpty(t, product.CreatedAt)
}

func TestCreateProduct_FieldSpecificValidation(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")
	req := bearer(token)

	cases := []struct {
		name    string
		input   resolvers.CreateProductInput
		message string
	}{
		{"short name", resolvers.CreateProductInput{Name: "a", Price: dec("1.00"), Quantity: intPtr(1)}, "name must be at least 2 characters"},
		{"whitespace name", resolvers.CreateProductInput{Name: " a ", Price: dec("1.00"), Quantity: intPtr(1)}, "name must be at least 2 characters"},
		{"negative price", resolvers.CreateProductInput{Name: "ok", Price: dec("-0.01"), Quantity: intPtr(1)}, "price must be zero or greater"},
		{"missing price", resolvers.CreateProductInput{Name: "ok", Quantity: intPtr(1)}, "price must be zero or greater"},
		{"negative quantity", resolvers.CreateProductInput{Name: "ok", Price: dec("1.00"), Quantity: intPtr(-1)}, "quantity must be zero or greater"},
		{"missing quantity", resolvers.CreateProductInput{Name: "ok", Price: dec("1.00")}, "quantity must be zero or greater"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.CreateProduct(req, tc.input)
			assert.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestUpdateProduct_GenericValidation(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")
	req := bearer(token)

	product, err := r.CreateProduct(req, resolvers.CreateProductInput{
		Name: "Monitor", Price: dec("200.00"), Quantity: intPtr(5),
	})
	assert.NoError(t, err)

	// All fields absent: generic error.
	_, errEmpty := r.UpdateProduct(req, product.ID, resolvers.UpdateProductInput{})
	assert.Error(t, errEmpty)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(errEmpty))

	// Invalid present field: the same generic message, not a field-specific one.
	_, errNegative := r.UpdateProduct(req, product.ID, resolvers.UpdateProductInput{Quantity: intPtr(-1)})
	assert.Error(t, errNegative)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(errNegative))
	assert.Equal(t, errEmpty.Error(), errNegative.Error())

	_, errName := r.UpdateProduct(req, product.ID, resolvers.UpdateProductInput{Name: strPtr(" a ")})
	assert.Equal(t, errEmpty.Error(), errName.Error())

	_, errPrice := r.UpdateProduct(req, product.ID, resolvers.UpdateProductInput{Price: dec("-0.01")})
	assert.Equal(t, errEmpty.Error(), errPrice.Error())
}

func TestUpdateProduct_Partial(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")
	req := bearer(token)

	product, err := r.CreateProduct(req, resolvers.CreateProductInput{
		Name: "Monitor", Description: "27 inch", Price: dec("200.00"), Quantity: intPtr(5),
	})
	assert.NoError(t, err)

	updated, err := r.UpdateProduct(req, product.ID, resolvers.UpdateProductInput{Quantity: intPtr(3)})
	assert.NoError(t, err)
	// Absent fields keep their prior values.
	assert.Equal(t, "Monitor", updated.Name)
	assert.Equal(t, "27 inch", updated.Description)
	assert.Equal(t, "200.00", updated.Price)
	assert.Equal(t, 3, updated.Quantity)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")

	_, err := r.UpdateProduct(bearer(token), "3f1f8a52-9c14-4b6e-90df-0a4a45b8a8de", resolvers.UpdateProductInput{Quantity: intPtr(3)})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteProduct_RoleEnforcement(t *testing.T) {
	r, users, auth := setupResolver(t)
	userToken := registerAndLogin(t, r, "alice", "alice@example.com", "password123")

	product, err := r.CreateProduct(bearer(userToken), resolvers.CreateProductInput{
		Name: "Mouse", Price: dec("25.00"), Quantity: intPtr(50),
	})
	assert.NoError(t, err)

	// A USER-role token may not delete.
	_, err = r.DeleteProduct(bearer(userToken), product.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	// An ADMIN-role token deletes, after which the product is gone.
	admin := adminToken(t, r, users, auth)
	ok, err := r.DeleteProduct(bearer(admin), product.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = r.ProductByID(bearer(userToken), product.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	// Deleting again is a NotFound, observed by the caller.
	_, err = r.DeleteProduct(bearer(admin), product.ID)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProductPriceRoundTrip(t *testing.T) {
	r, _, _ := setupResolver(t)
	token := registerAndLogin(t, r, "alice", "alice@example.com", "password123")
	req := bearer(token)

	product, err := r.CreateProduct(req, resolvers.CreateProductInput{
		Name: "Cable", Price: dec("19.90"), Quantity: intPtr(7),
	})
	assert.NoError(t, err)
	assert.Equal(t, "19.90", product.Price)

	fetched, err := r.ProductByID(req, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "19.90", fetched.Price)
}
