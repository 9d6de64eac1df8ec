package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/usecase/services"
)

func validClientRequest() models.ClientRequest {
	return models.ClientRequest{
		IdentificationKind:   "NATIONAL_ID",
		IdentificationNumber: "10203040",
		GivenName:            "Ada",
		Surname:              "Lovelace",
		Email:                "ada@example.com",
		BirthDate:            "1990-03-14",
	}
}

func TestClientServiceCreateClientSuccess(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		createFn: func(_ context.Context, client domain.Client) (domain.Client, error) {
			if client.CreatedAt.IsZero() || client.UpdatedAt.IsZero() {
				t.Fatal("expected timestamps to be stamped before persistence")
			}
			client.ID = 7
			return client, nil
		},
	}, accountRepoStub{})

	resp, err := svc.CreateClient(context.Background(), validClientRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.ID != 7 {
		t.Fatalf("expected persisted id 7, got %d", resp.Data.ID)
	}
	if resp.Data.AccountCount != 0 {
		t.Fatalf("expected zero account count on a fresh client, got %d", resp.Data.AccountCount)
	}
}

func TestClientServiceCreateClientValidationError(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{}, accountRepoStub{})

	_, err := svc.CreateClient(context.Background(), models.ClientRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty request")
	}
}

func TestClientServiceCreateClientUnderage(t *testing.T) {
	req := validClientRequest()
	req.BirthDate = time.Now().UTC().AddDate(-18, 0, 1).Format("2006-01-02")

	svc := services.NewClientService(clientRepoStub{}, accountRepoStub{})

	resp, err := svc.CreateClient(context.Background(), req)
	if !errors.Is(err, domain.ErrUnderage) {
		t.Fatalf("expected ErrUnderage, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected failure response")
	}
}

func TestClientServiceCreateClientExactlyEighteen(t *testing.T) {
	req := validClientRequest()
	req.BirthDate = time.Now().UTC().AddDate(-18, 0, 0).Format("2006-01-02")

	svc := services.NewClientService(clientRepoStub{}, accountRepoStub{})

	if _, err := svc.CreateClient(context.Background(), req); err != nil {
		t.Fatalf("expected a client turning 18 today to be accepted, got %v", err)
	}
}

func TestClientServiceCreateClientDuplicateIdentification(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		existsByIdentifierFn: func(context.Context, string) (bool, error) {
			return true, nil
		},
	}, accountRepoStub{})

	_, err := svc.CreateClient(context.Background(), validClientRequest())
	if !errors.Is(err, domain.ErrDuplicateIdentification) {
		t.Fatalf("expected ErrDuplicateIdentification, got %v", err)
	}
}

func TestClientServiceCreateClientDuplicateEmail(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		existsByEmailFn: func(context.Context, string) (bool, error) {
			return true, nil
		},
	}, accountRepoStub{})

	_, err := svc.CreateClient(context.Background(), validClientRequest())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestClientServiceUpdateClientSuccess(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Client, error) {
			return domain.Client{ID: id, Email: "old@example.com"}, nil
		},
		updateFn: func(_ context.Context, client domain.Client) (domain.Client, error) {
			if client.Email != "ada@example.com" {
				t.Fatalf("expected email to be replaced, got %q", client.Email)
			}
			return client, nil
		},
	}, accountRepoStub{})

	resp, err := svc.UpdateClient(context.Background(), 7, validClientRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
}

func TestClientServiceUpdateClientEmailTakenByAnother(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		findByEmailFn: func(_ context.Context, email string) (domain.Client, error) {
			return domain.Client{ID: 99, Email: email}, nil
		},
	}, accountRepoStub{})

	_, err := svc.UpdateClient(context.Background(), 7, validClientRequest())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestClientServiceUpdateClientKeepingOwnEmail(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		findByEmailFn: func(_ context.Context, email string) (domain.Client, error) {
			return domain.Client{ID: 7, Email: email}, nil
		},
	}, accountRepoStub{})

	if _, err := svc.UpdateClient(context.Background(), 7, validClientRequest()); err != nil {
		t.Fatalf("expected a client keeping their own email to succeed, got %v", err)
	}
}

func TestClientServiceUpdateClientNotFound(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{
		findByIDFn: func(context.Context, int64) (domain.Client, error) {
			return domain.Client{}, domain.ErrRecordNotFound
		},
	}, accountRepoStub{})

	_, err := svc.UpdateClient(context.Background(), 404, validClientRequest())
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClientServiceDeleteClientWithAccounts(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{}, accountRepoStub{
		findByClientIDFn: func(_ context.Context, clientID int64) ([]domain.Account, error) {
			return []domain.Account{{ID: 1, ClientID: clientID}}, nil
		},
	})

	_, err := svc.DeleteClient(context.Background(), 7)
	if !errors.Is(err, domain.ErrHasLinkedAccounts) {
		t.Fatalf("expected ErrHasLinkedAccounts, got %v", err)
	}
}

func TestClientServiceDeleteClientSuccess(t *testing.T) {
	deleted := false
	svc := services.NewClientService(clientRepoStub{
		deleteByIDFn: func(_ context.Context, id int64) error {
			deleted = true
			return nil
		},
	}, accountRepoStub{})

	resp, err := svc.DeleteClient(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !deleted {
		t.Fatal("expected repository delete to be called")
	}
	if resp.Data == nil || !resp.Data.Deleted || resp.Data.ID != 7 {
		t.Fatal("expected delete confirmation in response data")
	}
}

func TestClientServiceGetClientCountsAccounts(t *testing.T) {
	svc := services.NewClientService(clientRepoStub{}, accountRepoStub{
		findByClientIDFn: func(_ context.Context, clientID int64) ([]domain.Account, error) {
			return []domain.Account{{ID: 1}, {ID: 2}}, nil
		},
	})

	resp, err := svc.GetClient(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.AccountCount != 2 {
		t.Fatal("expected account count of 2 in response")
	}
}
