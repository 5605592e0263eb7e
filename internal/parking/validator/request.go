package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"parkd/internal/parking/graph"
	apperrors "parkd/pkg/errors"
	"parkd/pkg/logger"
	"parkd/pkg/model"
)

// plateRegex accepts sanitized plates: 2-12 uppercase alphanumerics.
var plateRegex = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// RequestValidator checks admission and release inputs before they
// reach the coordinator.
type RequestValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewRequestValidator(log *logger.Logger) *RequestValidator {
	v := validator.New()

	if err := v.RegisterValidation("plate", validatePlateField); err != nil {
		log.Fatal("Failed to register 'plate' validator", "error", err)
	}

	return &RequestValidator{
		validate: v,
		log:      log,
	}
}

func validatePlateField(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(fl.Field().String())
}

// ValidatePlate checks a single sanitized plate value.
func (v *RequestValidator) ValidatePlate(plate string) error {
	if plate == "" {
		return apperrors.InvalidInput("Plate cannot be empty")
	}
	if !plateRegex.MatchString(plate) {
		return apperrors.Validation("Invalid plate format", map[string]any{
			"plate": plate,
			"rule":  "2-12 alphanumeric characters",
		})
	}
	return nil
}

// ValidateGraph checks a caller-supplied topology: every edge weight
// must be non-negative (the finder assumes Dijkstra's precondition)
// and node ids must not be negative.
func (v *RequestValidator) ValidateGraph(edges []model.GraphEdge) error {
	var errs ValidationErrors
	for i, e := range edges {
		if e.From < 0 || e.To < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("edges[%d]", i),
				Message: "node ids cannot be negative",
			})
		}
		if e.Weight < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("edges[%d].weight", i),
				Message: "edge weight cannot be negative",
			})
		}
	}
	if len(errs) > 0 {
		v.log.Warn("Graph payload validation failed", "error", errs)
		return apperrors.Validation("Invalid graph payload", map[string]any{"error": errs.Error()})
	}
	return nil
}

// ValidateStruct runs tag-based validation on a request payload.
func (v *RequestValidator) ValidateStruct(payload any) error {
	if err := v.validate.Struct(payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return apperrors.Validation("Invalid request", map[string]any{
				"error": v.translate(validationErrs).Error(),
			})
		}
		return apperrors.Internal("Validation failed", err)
	}
	return nil
}

func (v *RequestValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		message := err.Error()
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "plate":
			message = fmt.Sprintf("%s must be 2-12 alphanumeric characters", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}
		out = append(out, ValidationError{Field: err.Field(), Message: message})
	}
	return out
}

// BuildGraph converts a wire edge list into the immutable graph the
// finder consumes. Target-only nodes get an empty adjacency entry so
// reachability checks see them.
func BuildGraph(edges []model.GraphEdge) *graph.Graph {
	adj := make(map[int][]graph.Edge)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], graph.Edge{To: e.To, Weight: e.Weight})
		if _, ok := adj[e.To]; !ok {
			adj[e.To] = nil
		}
	}
	return graph.New(adj)
}
