package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

func TestClientService_CreateClient_IdempotentCaseInsensitive(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	first, err := svc.CreateClient(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.CreateClient(context.Background(), "ACME CORP")
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same client id for case-variant names, got %s and %s", first.ID, second.ID)
	}
	if len(repo.clients) != 1 {
		t.Fatalf("expected one stored client, got %d", len(repo.clients))
	}
	if second.Password != first.Password {
		t.Fatalf("idempotent create must not regenerate the password")
	}
}

func TestClientService_CreateClient_GeneratedPassword(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	client, err := svc.CreateClient(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(client.Password) != passwordLength {
		t.Fatalf("expected %d-char password, got %d", passwordLength, len(client.Password))
	}
	for _, ch := range client.Password {
		if !strings.ContainsRune(passwordAlphabet, ch) {
			t.Fatalf("password contains character outside the alphabet: %q", ch)
		}
	}
	if client.ContractType != domain.ContractNone {
		t.Fatalf("new clients default to no contract, got %s", client.ContractType)
	}
	if len(client.ViewableClientIDs) != 0 {
		t.Fatalf("new clients start with no grants")
	}
}

func TestClientService_SetPermissions_StripsSelfAndDuplicates(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	a, _ := svc.CreateClient(context.Background(), "A")
	b, _ := svc.CreateClient(context.Background(), "B")

	if err := svc.SetPermissions(context.Background(), a.ID, []string{a.ID, b.ID, b.ID, ""}); err != nil {
		t.Fatalf("set permissions failed: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), a.ID)
	if len(stored.ViewableClientIDs) != 1 || stored.ViewableClientIDs[0] != b.ID {
		t.Fatalf("expected grants [%s], got %v", b.ID, stored.ViewableClientIDs)
	}
}

func TestClientService_VisibleOwnerIDs_NonTransitive(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	a, _ := svc.CreateClient(context.Background(), "A")
	b, _ := svc.CreateClient(context.Background(), "B")
	c, _ := svc.CreateClient(context.Background(), "C")
	_ = svc.SetPermissions(context.Background(), a.ID, []string{b.ID})
	_ = svc.SetPermissions(context.Background(), b.ID, []string{c.ID})

	visible, err := svc.VisibleOwnerIDs(context.Background(), domain.RoleClient, a.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := map[string]bool{a.ID: true, b.ID: true}
	if len(visible) != len(want) {
		t.Fatalf("expected exactly {A, B}, got %v", visible)
	}
	for _, id := range visible {
		if !want[id] {
			t.Fatalf("unexpected visible owner %s (transitive grant leaked)", id)
		}
	}
}

func TestClientService_VisibleOwnerIDs_AdminSeesAllDynamically(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	_, _ = svc.CreateClient(context.Background(), "A")

	visible, _ := svc.VisibleOwnerIDs(context.Background(), domain.RoleAdmin, "")
	if len(visible) != 1 {
		t.Fatalf("expected 1 owner, got %d", len(visible))
	}

	// The admin set is evaluated at call time, not snapshotted.
	_, _ = svc.CreateClient(context.Background(), "B")
	visible, _ = svc.VisibleOwnerIDs(context.Background(), domain.RoleAdmin, "")
	if len(visible) != 2 {
		t.Fatalf("expected 2 owners after create, got %d", len(visible))
	}
}

func TestClientService_EditClient_UnknownContractType(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	a, _ := svc.CreateClient(context.Background(), "A")

	if err := svc.EditClient(context.Background(), a.ID, ports.EditClientInput{ContractType: "weekly"}); err == nil {
		t.Fatalf("expected error for unknown contract type")
	}
	if err := svc.EditClient(context.Background(), a.ID, ports.EditClientInput{Name: "A2", ContractType: string(domain.ContractMonthly)}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), a.ID)
	if stored.Name != "A2" || stored.ContractType != domain.ContractMonthly {
		t.Fatalf("edit not applied: %+v", stored)
	}
}

func TestClientService_EditClient_UnknownIDIsNoop(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())

	if err := svc.EditClient(context.Background(), "missing", ports.EditClientInput{Name: "X"}); err != nil {
		t.Fatalf("edit on unknown id must be a silent no-op, got %v", err)
	}
}

func TestClientService_DeleteClient_LeavesGrantsDangling(t *testing.T) {
	repo := newStubClientRepo()
	svc := NewClientService(repo, zerolog.Nop())
	a, _ := svc.CreateClient(context.Background(), "A")
	b, _ := svc.CreateClient(context.Background(), "B")
	_ = svc.SetPermissions(context.Background(), a.ID, []string{b.ID})

	if err := svc.DeleteClient(context.Background(), b.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The dangling grant stays stored and simply resolves to nothing.
	stored, _ := repo.FindByID(context.Background(), a.ID)
	if len(stored.ViewableClientIDs) != 1 {
		t.Fatalf("delete must not touch other clients' grants")
	}
	visible, _ := svc.VisibleOwnerIDs(context.Background(), domain.RoleClient, a.ID)
	if len(visible) != 2 {
		t.Fatalf("visible set still lists the dangling id: %v", visible)
	}
}
