package store

import (
	"strings"
	"testing"

	"github.com/itemkeeper/item-keeper/models"
)

func TestBuildUpdateItemQuery_NameAndCost(t *testing.T) {
	update := models.UpdateItemRequest{
		ID:          3,
		Email:       "a@x.com",
		NewItemName: "lamp",
		Cost:        250,
	}

	query, args, err := buildUpdateItemQuery(update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(query, "UPDATE items SET") {
		t.Errorf("unexpected query prefix: %q", query)
	}
	if !strings.Contains(query, "item = ") {
		t.Errorf("expected item column in SET clause: %q", query)
	}
	if !strings.Contains(query, "cost = ") {
		t.Errorf("expected cost column in SET clause: %q", query)
	}
	if !strings.Contains(query, "RETURNING") {
		t.Errorf("expected RETURNING clause: %q", query)
	}
	if !strings.Contains(query, "$1") {
		t.Errorf("expected dollar placeholders: %q", query)
	}

	// cost, owner email, item number, plus the replacement name
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d: %v", len(args), args)
	}
}

func TestBuildUpdateItemQuery_CostOnly(t *testing.T) {
	update := models.UpdateItemRequest{
		ID:    3,
		Email: "a@x.com",
		Cost:  100,
	}

	query, args, err := buildUpdateItemQuery(update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(query, "item = ") {
		t.Errorf("item column must not be rewritten without a replacement name: %q", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d: %v", len(args), args)
	}
}
