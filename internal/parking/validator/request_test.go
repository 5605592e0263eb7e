package validator

import (
	"errors"
	"testing"

	apperrors "parkd/pkg/errors"
	"parkd/pkg/logger"
	"parkd/pkg/model"
)

func testValidator() *RequestValidator {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewRequestValidator(log)
}

func TestValidatePlate(t *testing.T) {
	v := testValidator()

	valid := []string{"AB", "KA01AB1234", "123456789012", "X9"}
	for _, plate := range valid {
		if err := v.ValidatePlate(plate); err != nil {
			t.Errorf("expected %q valid, got %v", plate, err)
		}
	}

	if err := v.ValidatePlate(""); err == nil {
		t.Error("expected error for empty plate")
	} else {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("expected invalid input code, got %v", err)
		}
	}

	invalid := []string{"A", "1234567890123", "ab12", "AB 12", "AB-12", "AB?1"}
	for _, plate := range invalid {
		err := v.ValidatePlate(plate)
		if err == nil {
			t.Errorf("expected %q rejected", plate)
			continue
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
			t.Errorf("expected validation code for %q, got %v", plate, err)
		}
	}
}

func TestValidateGraph(t *testing.T) {
	v := testValidator()

	valid := []model.GraphEdge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 2.5},
	}
	if err := v.ValidateGraph(valid); err != nil {
		t.Errorf("expected valid graph accepted, got %v", err)
	}

	if err := v.ValidateGraph([]model.GraphEdge{{From: -1, To: 2, Weight: 1}}); err == nil {
		t.Error("expected rejection of negative node id")
	}
	if err := v.ValidateGraph([]model.GraphEdge{{From: 0, To: 1, Weight: -0.5}}); err == nil {
		t.Error("expected rejection of negative weight")
	}
}

func TestValidateStruct(t *testing.T) {
	v := testValidator()

	if err := v.ValidateStruct(model.EntryRequest{Plate: "AB123"}); err != nil {
		t.Errorf("expected valid request accepted, got %v", err)
	}

	if err := v.ValidateStruct(model.EntryRequest{}); err == nil {
		t.Error("expected rejection of missing plate")
	}

	bad := model.EntryRequest{
		Plate: "AB123",
		Graph: []model.GraphEdge{{From: -1, To: 0, Weight: 1}},
	}
	if err := v.ValidateStruct(bad); err == nil {
		t.Error("expected rejection of negative edge endpoint")
	}
}

func TestBuildGraph(t *testing.T) {
	edges := []model.GraphEdge{
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 2, Weight: 2},
		{From: 1, To: 3, Weight: 1},
	}

	g := BuildGraph(edges)

	if !g.HasNode(0) || !g.HasNode(1) || !g.HasNode(2) || !g.HasNode(3) {
		t.Error("expected all referenced nodes present")
	}

	// Target-only nodes get an adjacency entry so the finder can reach
	// and terminate on them.
	if len(g.Neighbors(3)) != 0 {
		t.Errorf("expected no outgoing edges from node 3, got %v", g.Neighbors(3))
	}

	out := g.Neighbors(0)
	if len(out) != 2 {
		t.Fatalf("expected 2 edges from node 0, got %d", len(out))
	}
}
