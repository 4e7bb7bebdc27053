package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/sssolid/Crown-Nexus-sub007/internal/domain"
)

func TestCreateAndGetModelMapping(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	m := &domain.ModelMapping{Pattern: "WK", Mapping: "Jeep|WK|Grand Cherokee", Priority: 10, Active: true}
	if err := CreateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID == 0 {
		t.Fatalf("expected autoincrement id")
	}

	got, err := GetModelMapping(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Pattern != "WK" || got.Mapping != "Jeep|WK|Grand Cherokee" || got.Priority != 10 || !got.Active {
		t.Fatalf("unexpected row: %+v", got)
	}
}

// An inactive row must stay inactive through the insert; a column default
// would let GORM skip the zero-value field and flip it to active.
func TestCreateModelMapping_InactivePersisted(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	m := &domain.ModelMapping{Pattern: "ZJ", Mapping: "Jeep|ZJ|Grand Cherokee", Priority: 5, Active: false}
	if err := CreateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := GetModelMapping(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatalf("expected row to stay inactive, got %+v", got)
	}

	rows, err := ListActiveModelMappings(ctx, db)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("inactive row leaked into matching set: %+v", rows)
	}
}

func TestCreateModelMapping_DuplicateSlot(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	a := &domain.ModelMapping{Pattern: "JK", Mapping: "Jeep|JK|Wrangler", Priority: 5, Active: true}
	if err := CreateModelMapping(ctx, db, a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	b := &domain.ModelMapping{Pattern: "JK", Mapping: "Jeep|JK|Wrangler JK", Priority: 5, Active: true}
	if err := CreateModelMapping(ctx, db, b); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same pattern at a different priority occupies a different slot.
	c := &domain.ModelMapping{Pattern: "JK", Mapping: "Jeep|JK|Wrangler", Priority: 6, Active: true}
	if err := CreateModelMapping(ctx, db, c); err != nil {
		t.Fatalf("create c: %v", err)
	}
}

func TestGetModelMapping_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	if _, err := GetModelMapping(context.Background(), db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateModelMapping_WritesFalseActive(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	m := &domain.ModelMapping{Pattern: "XJ", Mapping: "Jeep|XJ|Cherokee", Priority: 1, Active: true}
	if err := CreateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	m.Active = false
	m.Mapping = "Jeep|XJ|Cherokee XJ"
	if err := UpdateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := GetModelMapping(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatalf("false Active must be persisted, not skipped as zero value")
	}
	if got.Mapping != "Jeep|XJ|Cherokee XJ" {
		t.Fatalf("mapping = %q", got.Mapping)
	}
}

func TestUpdateModelMapping_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	m := &domain.ModelMapping{ID: 12345, Pattern: "ZZ", Mapping: "A|B|C", Priority: 0, Active: true}
	if err := UpdateModelMapping(context.Background(), db, m); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteModelMapping(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	m := &domain.ModelMapping{Pattern: "TJ", Mapping: "Jeep|TJ|Wrangler", Priority: 0, Active: true}
	if err := CreateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := DeleteModelMapping(ctx, db, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteModelMapping(ctx, db, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestFindModelMappingByPattern(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	m := &domain.ModelMapping{Pattern: "WJ", Mapping: "Jeep|WJ|Grand Cherokee", Priority: 3, Active: true}
	if err := CreateModelMapping(ctx, db, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := FindModelMappingByPattern(ctx, db, "WJ", 3)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != m.ID {
		t.Fatalf("wrong row: %+v", got)
	}

	if _, err := FindModelMappingByPattern(ctx, db, "WJ", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty slot, got %v", err)
	}
}

func TestListActiveModelMappings_MatchingOrder(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	seed := []domain.ModelMapping{
		{Pattern: "b-low", Mapping: "A|B|C", Priority: 1, Active: true},
		{Pattern: "a-low", Mapping: "A|B|C", Priority: 1, Active: true},
		{Pattern: "high", Mapping: "A|B|C", Priority: 9, Active: true},
		{Pattern: "inactive", Mapping: "A|B|C", Priority: 100, Active: false},
	}
	for i := range seed {
		if err := CreateModelMapping(ctx, db, &seed[i]); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	rows, err := ListActiveModelMappings(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 active rows, got %d", len(rows))
	}
	if rows[0].Pattern != "high" {
		t.Fatalf("priority desc violated: %+v", rows)
	}
	if rows[1].Pattern != "a-low" || rows[2].Pattern != "b-low" {
		t.Fatalf("pattern asc tie-break violated: %+v", rows)
	}
}

func TestCountAndListModelMappingsPage(t *testing.T) {
	db := newTestDB(t, &domain.ModelMapping{})
	ctx := context.Background()

	for i, p := range []string{"p1", "p2", "p3"} {
		m := &domain.ModelMapping{Pattern: p, Mapping: "A|B|C", Priority: i, Active: i%2 == 0}
		if err := CreateModelMapping(ctx, db, m); err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}

	total, err := CountModelMappings(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("count = %d; inactive rows must be included", total)
	}

	page, err := ListModelMappingsPage(ctx, db, 1, 2)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
	// Priority desc: p3(2), p2(1), p1(0); offset 1 skips p3.
	if page[0].Pattern != "p2" || page[1].Pattern != "p1" {
		t.Fatalf("unexpected page order: %+v", page)
	}
}
