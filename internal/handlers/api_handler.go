package handlers

import (
	"encoding/json"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/resolvers"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// APIHandler exposes the query/mutation operations over a single endpoint.
type APIHandler struct {
	resolver *resolvers.Resolver
	log      zerolog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(resolver *resolvers.Resolver, log zerolog.Logger) *APIHandler {
	return &APIHandler{
		resolver: resolver,
		log:      log,
	}
}

// RegisterRoutes registers the API endpoint with the Fiber app.
func (h *APIHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/query", h.HandleQuery)
}

// queryRequest is the envelope of one operation call.
type queryRequest struct {
	Operation string          `json:"operation"`
	Arguments json.RawMessage `json:"arguments"`
}

// HandleQuery dispatches a single operation to its resolver, turning
// domain errors into operation-level error responses.
func (h *APIHandler) HandleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	request := resolvers.Request{Authorization: c.Get("Authorization")}

	result, err := h.dispatch(request, req)
	if err != nil {
		return h.renderError(c, req.Operation, err)
	}
	return c.JSON(fiber.Map{"data": result})
}

func (h *APIHandler) dispatch(request resolvers.Request, req queryRequest) (interface{}, error) {
	switch req.Operation {
	case "register":
		var input resolvers.RegisterInput
		if err := decodeArguments(req.Arguments, &input); err != nil {
			return nil, err
		}
		return h.resolver.Register(input)

	case "login":
		var input resolvers.LoginInput
		if err := decodeArguments(req.Arguments, &input); err != nil {
			return nil, err
		}
		return h.resolver.Login(input)

	case "me":
		return h.resolver.Me(request)

	case "products":
		return h.resolver.Products(request)

	case "productById":
		var args struct {
			ID string `json:"id"`
		}
		if err := decodeArguments(req.Arguments, &args); err != nil {
			return nil, err
		}
		return h.resolver.ProductByID(request, args.ID)

	case "createProduct":
		var input resolvers.CreateProductInput
		if err := decodeArguments(req.Arguments, &input); err != nil {
			return nil, err
		}
		return h.resolver.CreateProduct(request, input)

	case "updateProduct":
		var args struct {
			ID string `json:"id"`
			resolvers.UpdateProductInput
		}
		if err := decodeArguments(req.Arguments, &args); err != nil {
			return nil, err
		}
		return h.resolver.UpdateProduct(request, args.ID, args.UpdateProductInput)

	case "deleteProduct":
		var args struct {
			ID string `json:"id"`
		}
		if err := decodeArguments(req.Arguments, &args); err != nil {
			return nil, err
		}
		ok, err := h.resolver.DeleteProduct(request, args.ID)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"success": ok}, nil

	default:
		return nil, apperrors.Validation(fmt.Sprintf("unknown operation %q", req.Operation))
	}
}

func decodeArguments(raw json.RawMessage, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return apperrors.Validation("invalid arguments: " + err.Error())
	}
	return nil
}

// renderError maps an error kind to an HTTP status. The domain message
// itself passes through unmodified.
func (h *APIHandler) renderError(c *fiber.Ctx, operation string, err error) error {
	kind := apperrors.KindOf(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case apperrors.KindUnauthorized, apperrors.KindInvalidCredentials:
		status = fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		status = fiber.StatusForbidden
	case apperrors.KindValidation:
		status = fiber.StatusBadRequest
	case apperrors.KindConflict:
		status = fiber.StatusConflict
	case apperrors.KindNotFound:
		status = fiber.StatusNotFound
	}

	if status == fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("operation", operation).Msg("operation failed")
		// Do not leak store internals to callers.
		return c.Status(status).JSON(fiber.Map{
			"errors": []fiber.Map{{"message": "internal error", "kind": kind}},
		})
	}

	h.log.Debug().Err(err).Str("operation", operation).Msg("operation rejected")
	return c.Status(status).JSON(fiber.Map{
		"errors": []fiber.Map{{"message": err.Error(), "kind": kind}},
	})
}
