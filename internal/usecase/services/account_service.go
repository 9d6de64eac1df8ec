package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// maxNumberAttempts bounds account-number generation retries before the
// operation fails with ErrGenerationExhausted.
const maxNumberAttempts = 5

// AccountNumberGenerator produces candidate account numbers for a type.
// Candidates are not guaranteed unique; AccountService checks and retries.
type AccountNumberGenerator interface {
	Generate(accountType domain.AccountType) (string, error)
}

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	clientRepo  repo_interfaces.ClientRepository
	numberGen   AccountNumberGenerator
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
	numberGen AccountNumberGenerator,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		numberGen:   numberGen,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		logger.Error("account service create account client lookup failed", err, logger.Fields{
			"clientId": req.ClientID,
		})
		return failure[models.AccountResponse]("failed to create account", err)
	}

	balance, err := parseBalance(req.InitialBalance)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	accountType := domain.AccountType(strings.TrimSpace(req.AccountType))
	account := domain.Account{
		ClientID:  client.ID,
		Type:      accountType,
		Status:    domain.AccountStatusActive,
		Balance:   balance,
		GMFExempt: req.GMFExempt != nil && *req.GMFExempt,
	}

	created, err := s.createWithUniqueNumber(ctx, account)
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return failure[models.AccountResponse]("failed to create account", err)
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.Number,
		"clientId":      created.ClientID,
	})

	return commons.SuccessResponse("account created successfully", models.NewAccountResponse(created, client.DisplayName())), nil
}

// createWithUniqueNumber generates a candidate number, verifies it against
// the persisted set and inserts; a collision (either on the pre-check or on
// the unique index at insert time) burns one attempt.
func (s *AccountService) createWithUniqueNumber(ctx context.Context, account domain.Account) (domain.Account, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := s.numberGen.Generate(account.Type)
		if err != nil {
			return domain.Account{}, err
		}

		exists, err := s.accountRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return domain.Account{}, err
		}
		if exists {
			continue
		}

		account.Number = number
		account.PrepareForInsert(time.Now().UTC())

		created, err := s.accountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			continue
		}
		if err != nil {
			return domain.Account{}, err
		}
		return created, nil
	}

	return domain.Account{}, domain.ErrGenerationExhausted
}

func (s *AccountService) UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service update account validation failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("account service update account lookup failed", err, logger.Fields{
			"accountId": id,
		})
		return failure[models.AccountResponse]("failed to update account", err)
	}

	if req.Balance != nil {
		balance, err := decimal.NewFromString(strings.TrimSpace(*req.Balance))
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", "balance must be numeric"), err
		}
		account.Balance = balance.Round(2)
	}
	if req.GMFExempt != nil {
		account.GMFExempt = *req.GMFExempt
	}
	account.PrepareForUpdate(time.Now().UTC())

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service update account repository failed", err, logger.Fields{
			"accountId": id,
		})
		return failure[models.AccountResponse]("failed to update account", err)
	}

	logger.Info("account service update account success", logger.Fields{
		"accountId": updated.ID,
	})

	return s.respondWithOwner(ctx, "account updated successfully", updated)
}

func (s *AccountService) ChangeAccountStatus(ctx context.Context, id int64, req models.ChangeAccountStatusRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service change status request", logger.Fields{
		"accountId": id,
		"status":    req.Status,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	newStatus := domain.AccountStatus(strings.TrimSpace(req.Status))

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("account service change status lookup failed", err, logger.Fields{
			"accountId": id,
		})
		return failure[models.AccountResponse]("failed to change account status", err)
	}

	if account.Status == domain.AccountStatusCancelled && newStatus != domain.AccountStatusCancelled {
		return failure[models.AccountResponse]("failed to change account status", domain.ErrAccountCancelled)
	}
	if newStatus == domain.AccountStatusCancelled && !account.CanCancel() {
		return failure[models.AccountResponse]("failed to change account status", domain.ErrCannotCancelNonZeroBalance)
	}

	account.Status = newStatus
	account.PrepareForUpdate(time.Now().UTC())

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service change status repository failed", err, logger.Fields{
			"accountId": id,
		})
		return failure[models.AccountResponse]("failed to change account status", err)
	}

	logger.Info("account service change status success", logger.Fields{
		"accountId": updated.ID,
		"status":    updated.Status,
	})

	return s.respondWithOwner(ctx, "account status changed successfully", updated)
}

// CancelAccount is changeStatus(CANCELLED) exposed as its own operation,
// since cancellation is the only transition with a guard.
func (s *AccountService) CancelAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	return s.ChangeAccountStatus(ctx, id, models.ChangeAccountStatusRequest{
		Status: string(domain.AccountStatusCancelled),
	})
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": id,
		})
		return failure[models.AccountResponse]("failed to get account", err)
	}

	return s.respondWithOwner(ctx, "account fetched successfully", account)
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, number string) (commons.Response[models.AccountResponse], error) {
	number = strings.TrimSpace(number)
	if !isTenDigitAccountNumber(number) {
		err := errors.New("accountNumber must be exactly 10 digits")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.FindByNumber(ctx, number)
	if err != nil {
		logger.Error("account service get account by number failed", err, logger.Fields{
			"accountNumber": number,
		})
		return failure[models.AccountResponse]("failed to get account", err)
	}

	return s.respondWithOwner(ctx, "account fetched successfully", account)
}

func (s *AccountService) ListAccountsByClient(ctx context.Context, clientID int64) (commons.Response[[]models.AccountResponse], error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		logger.Error("account service list by client lookup failed", err, logger.Fields{
			"clientId": clientID,
		})
		return failure[[]models.AccountResponse]("failed to list accounts", err)
	}

	accounts, err := s.accountRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return failure[[]models.AccountResponse]("failed to list accounts", err)
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, models.NewAccountResponse(account, client.DisplayName()))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return failure[[]models.AccountResponse]("failed to list accounts", err)
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		name := ""
		if client, err := s.clientRepo.FindByID(ctx, account.ClientID); err == nil {
			name = client.DisplayName()
		}
		responses = append(responses, models.NewAccountResponse(account, name))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func (s *AccountService) respondWithOwner(ctx context.Context, message string, account domain.Account) (commons.Response[models.AccountResponse], error) {
	name := ""
	if client, err := s.clientRepo.FindByID(ctx, account.ClientID); err == nil {
		name = client.DisplayName()
	}
	return commons.SuccessResponse(message, models.NewAccountResponse(account, name)), nil
}

func parseBalance(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("initialBalance must be numeric")
	}
	if parsed.IsNegative() {
		return decimal.Zero, errors.New("initialBalance cannot be negative")
	}

	return parsed.Round(2), nil
}

func isTenDigitAccountNumber(accountNumber string) bool {
	if len(accountNumber) != 10 {
		return false
	}

	for _, ch := range accountNumber {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
