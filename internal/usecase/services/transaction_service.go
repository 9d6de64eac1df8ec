package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger/internal/commons"
	"github.com/api-sage/retail-ledger/internal/domain"
	"github.com/api-sage/retail-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service create validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	kind := domain.TransactionKind(strings.TrimSpace(req.Kind))
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	amount = amount.Round(2)

	origin, err := s.accountRepo.FindByID(ctx, req.OriginAccountID)
	if err != nil {
		logger.Error("transaction service origin lookup failed", err, logger.Fields{
			"originAccountId": req.OriginAccountID,
		})
		return failure[models.TransactionResponse]("failed to create transaction", err)
	}
	if !origin.IsActive() {
		return failure[models.TransactionResponse]("failed to create transaction", domain.ErrInactiveAccount)
	}

	txn := domain.Transaction{
		Kind:            kind,
		Amount:          amount,
		Description:     strings.TrimSpace(req.Description),
		OriginAccountID: origin.ID,
	}
	txn.PrepareForInsert(time.Now().UTC())

	var (
		created           domain.Transaction
		destinationNumber string
	)

	switch kind {
	case domain.TransactionDeposit:
		created, err = s.transactionRepo.CreateDeposit(ctx, txn)

	case domain.TransactionWithdrawal:
		if origin.Balance.LessThan(amount) {
			return failure[models.TransactionResponse]("failed to create transaction", domain.ErrInsufficientFunds)
		}
		created, err = s.transactionRepo.CreateWithdrawal(ctx, txn)

	case domain.TransactionTransfer:
		if req.DestinationAccountID == nil {
			return failure[models.TransactionResponse]("failed to create transaction", domain.ErrDestinationRequired)
		}
		if *req.DestinationAccountID == origin.ID {
			return failure[models.TransactionResponse]("failed to create transaction", domain.ErrSameAccountTransfer)
		}

		destination, derr := s.accountRepo.FindByID(ctx, *req.DestinationAccountID)
		if derr != nil {
			logger.Error("transaction service destination lookup failed", derr, logger.Fields{
				"destinationAccountId": *req.DestinationAccountID,
			})
			return failure[models.TransactionResponse]("failed to create transaction", derr)
		}
		if !destination.IsActive() {
			return failure[models.TransactionResponse]("failed to create transaction", domain.ErrInactiveDestination)
		}
		if origin.Balance.LessThan(amount) {
			return failure[models.TransactionResponse]("failed to create transaction", domain.ErrInsufficientFunds)
		}

		destinationNumber = destination.Number
		txn.DestinationAccountID = &destination.ID
		created, err = s.transactionRepo.CreateTransfer(ctx, txn)
	}

	if err != nil {
		logger.Error("transaction service create repository failed", err, logger.Fields{
			"kind":            kind,
			"originAccountId": origin.ID,
		})
		return failure[models.TransactionResponse]("failed to create transaction", err)
	}

	logger.Info("transaction service create success", logger.Fields{
		"transactionId":   created.ID,
		"kind":            created.Kind,
		"originAccountId": created.OriginAccountID,
	})

	return commons.SuccessResponse("transaction created successfully", models.NewTransactionResponse(created, origin.Number, destinationNumber)), nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error) {
	txn, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("transaction service get failed", err, logger.Fields{
			"transactionId": id,
		})
		return failure[models.TransactionResponse]("failed to get transaction", err)
	}

	return commons.SuccessResponse("transaction fetched successfully", s.enrich(ctx, txn)), nil
}

func (s *TransactionService) ListTransactionsByAccount(ctx context.Context, accountID int64) (commons.Response[[]models.TransactionResponse], error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		logger.Error("transaction service list by account lookup failed", err, logger.Fields{
			"accountId": accountID,
		})
		return failure[[]models.TransactionResponse]("failed to list transactions", err)
	}

	txns, err := s.transactionRepo.FindAllByAccountID(ctx, accountID)
	if err != nil {
		return failure[[]models.TransactionResponse]("failed to list transactions", err)
	}

	responses := make([]models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, s.enrich(ctx, txn))
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) (commons.Response[[]models.TransactionResponse], error) {
	txns, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		logger.Error("transaction service list failed", err, nil)
		return failure[[]models.TransactionResponse]("failed to list transactions", err)
	}

	responses := make([]models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, s.enrich(ctx, txn))
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

// enrich resolves the account numbers for the response. A lookup failure
// leaves the number empty rather than failing the read.
func (s *TransactionService) enrich(ctx context.Context, txn domain.Transaction) models.TransactionResponse {
	originNumber := ""
	if origin, err := s.accountRepo.FindByID(ctx, txn.OriginAccountID); err == nil {
		originNumber = origin.Number
	}

	destinationNumber := ""
	if txn.DestinationAccountID != nil {
		if destination, err := s.accountRepo.FindByID(ctx, *txn.DestinationAccountID); err == nil {
			destinationNumber = destination.Number
		}
	}

	return models.NewTransactionResponse(txn, originNumber, destinationNumber)
}
