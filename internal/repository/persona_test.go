package repository

import (
	"errors"
	"testing"

	"github.com/sparclabs/sparc/internal/models"
)

func TestPersonaCreateAndGet(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	p := createTestPersona(t, d)
	if p.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("failed to get persona: %v", err)
	}
	if got == nil {
		t.Fatal("expected persona, got nil")
	}
	if got.Role != p.Role {
		t.Errorf("expected role %s, got %s", p.Role, got.Role)
	}
	if len(got.ContentStyles) != 2 {
		t.Errorf("expected 2 content styles, got %d", len(got.ContentStyles))
	}
}

func TestPersonaGetMissing(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	got, err := repo.GetByID("no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing persona, got %+v", got)
	}
}

func TestPersonaCreateValidation(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	err := repo.Create(&models.Persona{Name: "Nmeena", Experience: "2 years"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "role" {
		t.Errorf("expected role field, got %s", verr.Field)
	}

	err = repo.Create(&models.Persona{Name: "Nmeena", Role: "Developer", Experience: "   "})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "experience" {
		t.Errorf("expected experience field, got %s", verr.Field)
	}
}

func TestPersonaListSorted(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		err := repo.Create(&models.Persona{Name: name, Role: "Engineer", Experience: "3 years"})
		if err != nil {
			t.Fatalf("failed to create persona: %v", err)
		}
	}

	personas, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list personas: %v", err)
	}
	if len(personas) != 3 {
		t.Fatalf("expected 3 personas, got %d", len(personas))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if personas[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, personas[i].Name)
		}
	}
}

func TestPersonaUpdate(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	p := createTestPersona(t, d)
	p.TonePreference = "casual"
	if err := repo.Update(p); err != nil {
		t.Fatalf("failed to update persona: %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("failed to get persona: %v", err)
	}
	if got.TonePreference != "casual" {
		t.Errorf("expected tone casual, got %s", got.TonePreference)
	}

	missing := &models.Persona{ID: "no-such-id", Role: "Engineer", Experience: "3 years"}
	if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersonaDelete(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	p := createTestPersona(t, d)
	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("failed to delete persona: %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected persona gone after delete")
	}

	if err := repo.Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersonaDeleteBlockedWhenReferenced(t *testing.T) {
	d := setupTestDB(t)
	repo := NewPersonaRepository(d)

	p := createTestPersona(t, d)
	c := createTestCampaign(t, d)
	createTestContent(t, d, c.ID, p.ID, models.PlatformTwitter)

	if err := repo.Delete(p.ID); !errors.Is(err, ErrPersonaInUse) {
		t.Fatalf("expected ErrPersonaInUse, got %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Error("persona should survive blocked delete")
	}
}
