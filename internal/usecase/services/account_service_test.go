package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestAccountServiceCreateAccountSuccess(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			if account.Number[:2] != "53" {
				t.Fatalf("expected savings prefix on %q", account.Number)
			}
			if account.Status != domain.AccountStatusActive {
				t.Fatalf("expected new account to be ACTIVE, got %s", account.Status)
			}
			account.ID = 11
			return account, nil
		},
	}, clientRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Client, error) {
			return domain.Client{ID: id, GivenName: "Ada", Surname: "Lovelace"}, nil
		},
	}, generatorStub{})

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:       7,
		AccountType:    "SAVINGS",
		InitialBalance: "150.00",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Balance != "150.00" {
		t.Fatalf("expected balance 150.00, got %s", resp.Data.Balance)
	}
	if resp.Data.ClientName != "Ada Lovelace" {
		t.Fatalf("expected owner name in response, got %q", resp.Data.ClientName)
	}
}

func TestAccountServiceCreateAccountDefaultsToZeroBalance(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{}, clientRepoStub{}, generatorStub{})

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:    7,
		AccountType: "CHECKING",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected zero balance, got %s", resp.Data.Balance)
	}
}

func TestAccountServiceCreateAccountClientNotFound(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{}, clientRepoStub{
		findByIDFn: func(context.Context, int64) (domain.Client, error) {
			return domain.Client{}, domain.ErrRecordNotFound
		},
	}, generatorStub{})

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:    404,
		AccountType: "SAVINGS",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAccountServiceCreateAccountRetriesOnCollision(t *testing.T) {
	attempts := 0
	svc := services.NewAccountService(accountRepoStub{
		existsByNumberFn: func(context.Context, string) (bool, error) {
			attempts++
			return attempts < 3, nil
		},
	}, clientRepoStub{}, generatorStub{})

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:    7,
		AccountType: "SAVINGS",
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 generation attempts, got %d", attempts)
	}
}

func TestAccountServiceCreateAccountGenerationExhausted(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		existsByNumberFn: func(context.Context, string) (bool, error) {
			return true, nil
		},
	}, clientRepoStub{}, generatorStub{})

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:    7,
		AccountType: "SAVINGS",
	})
	if !errors.Is(err, domain.ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
}

func TestAccountServiceCreateAccountInsertRaceBurnsAttempt(t *testing.T) {
	inserts := 0
	svc := services.NewAccountService(accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			inserts++
			if inserts == 1 {
				return domain.Account{}, domain.ErrDuplicateAccountNumber
			}
			account.ID = 11
			return account, nil
		},
	}, clientRepoStub{}, generatorStub{})

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		ClientID:    7,
		AccountType: "CHECKING",
	})
	if err != nil {
		t.Fatalf("expected retry after unique index race, got %v", err)
	}
	if inserts != 2 {
		t.Fatalf("expected 2 insert attempts, got %d", inserts)
	}
}

func TestAccountServiceChangeStatusCancelRequiresZeroBalance(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			return domain.Account{ID: id, Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(5)}, nil
		},
	}, clientRepoStub{}, generatorStub{})

	_, err := svc.CancelAccount(context.Background(), 11)
	if !errors.Is(err, domain.ErrCannotCancelNonZeroBalance) {
		t.Fatalf("expected ErrCannotCancelNonZeroBalance, got %v", err)
	}
}

func TestAccountServiceChangeStatusCancelZeroBalance(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			return domain.Account{ID: id, Status: domain.AccountStatusActive}, nil
		},
	}, clientRepoStub{}, generatorStub{})

	resp, err := svc.CancelAccount(context.Background(), 11)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || resp.Data.Status != string(domain.AccountStatusCancelled) {
		t.Fatal("expected CANCELLED status in response")
	}
}

func TestAccountServiceChangeStatusCancelledIsTerminal(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			return domain.Account{ID: id, Status: domain.AccountStatusCancelled}, nil
		},
	}, clientRepoStub{}, generatorStub{})

	_, err := svc.ChangeAccountStatus(context.Background(), 11, models.ChangeAccountStatusRequest{Status: "ACTIVE"})
	if !errors.Is(err, domain.ErrAccountCancelled) {
		t.Fatalf("expected ErrAccountCancelled, got %v", err)
	}
}

func TestAccountServiceChangeStatusActiveInactiveUnrestricted(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			return domain.Account{ID: id, Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(100)}, nil
		},
	}, clientRepoStub{}, generatorStub{})

	resp, err := svc.ChangeAccountStatus(context.Background(), 11, models.ChangeAccountStatusRequest{Status: "INACTIVE"})
	if err != nil {
		t.Fatalf("expected deactivation with a balance to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.Status != string(domain.AccountStatusInactive) {
		t.Fatal("expected INACTIVE status in response")
	}
}

func TestAccountServiceUpdateAccountPatchesFields(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		findByIDFn: func(_ context.Context, id int64) (domain.Account, error) {
			return domain.Account{ID: id, Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(10)}, nil
		},
	}, clientRepoStub{}, generatorStub{})

	exempt := true
	resp, err := svc.UpdateAccount(context.Background(), 11, models.UpdateAccountRequest{GMFExempt: &exempt})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || !resp.Data.GMFExempt {
		t.Fatal("expected gmfExempt to be applied")
	}
	if resp.Data.Balance != "10.00" {
		t.Fatalf("expected untouched balance, got %s", resp.Data.Balance)
	}
}

func TestAccountServiceGetAccountByNumberRejectsMalformedNumber(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{}, clientRepoStub{}, generatorStub{})

	if _, err := svc.GetAccountByNumber(context.Background(), "12345"); err == nil {
		t.Fatal("expected validation error for short account number")
	}
	if _, err := svc.GetAccountByNumber(context.Background(), "53abc12345"); err == nil {
		t.Fatal("expected validation error for non-numeric account number")
	}
}
