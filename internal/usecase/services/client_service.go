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
)

type ClientService struct {
	clientRepo  repo_interfaces.ClientRepository
	accountRepo repo_interfaces.AccountRepository
}

func NewClientService(clientRepo repo_interfaces.ClientRepository, accountRepo repo_interfaces.AccountRepository) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
	}
}

func (s *ClientService) CreateClient(ctx context.Context, req models.ClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service create client request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service create client validation failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()), err
	}

	birthDate, err := req.ParsedBirthDate()
	if err != nil {
		return commons.ErrorResponse[models.ClientResponse]("validation failed", "birthDate must be in YYYY-MM-DD format"), err
	}

	now := time.Now().UTC()
	client := domain.Client{
		IdentificationKind:   domain.IdentificationKind(strings.TrimSpace(req.IdentificationKind)),
		IdentificationNumber: strings.TrimSpace(req.IdentificationNumber),
		GivenName:            strings.TrimSpace(req.GivenName),
		Surname:              strings.TrimSpace(req.Surname),
		Email:                strings.TrimSpace(req.Email),
		BirthDate:            birthDate,
	}

	if !client.IsAdult(now) {
		logger.Error("client service create client underage", domain.ErrUnderage, logger.Fields{
			"age": client.Age(now),
		})
		return failure[models.ClientResponse]("failed to create client", domain.ErrUnderage)
	}

	exists, err := s.clientRepo.ExistsByIdentificationNumber(ctx, client.IdentificationNumber)
	if err != nil {
		logger.Error("client service create client identification check failed", err, nil)
		return failure[models.ClientResponse]("failed to create client", err)
	}
	if exists {
		return failure[models.ClientResponse]("failed to create client", domain.ErrDuplicateIdentification)
	}

	exists, err = s.clientRepo.ExistsByEmail(ctx, client.Email)
	if err != nil {
		logger.Error("client service create client email check failed", err, nil)
		return failure[models.ClientResponse]("failed to create client", err)
	}
	if exists {
		return failure[models.ClientResponse]("failed to create client", domain.ErrDuplicateEmail)
	}

	client.PrepareForInsert(now)
	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		logger.Error("client service create client repository failed", err, nil)
		return failure[models.ClientResponse]("failed to create client", err)
	}

	logger.Info("client service create client success", logger.Fields{
		"clientId": created.ID,
	})

	return commons.SuccessResponse("client created successfully", models.NewClientResponse(created, 0)), nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id int64, req models.ClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service update client request", logger.Fields{
		"clientId": id,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service update client validation failed", err, logger.Fields{
			"clientId": id,
		})
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()), err
	}

	existing, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("client service update client lookup failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.ClientResponse]("failed to update client", err)
	}

	email := strings.TrimSpace(req.Email)
	owner, err := s.clientRepo.FindByEmail(ctx, email)
	if err == nil && owner.ID != id {
		return failure[models.ClientResponse]("failed to update client", domain.ErrDuplicateEmail)
	}
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("client service update client email check failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.ClientResponse]("failed to update client", err)
	}

	birthDate, err := req.ParsedBirthDate()
	if err != nil {
		return commons.ErrorResponse[models.ClientResponse]("validation failed", "birthDate must be in YYYY-MM-DD format"), err
	}

	// Age is validated only at creation, not retroactively.
	existing.IdentificationKind = domain.IdentificationKind(strings.TrimSpace(req.IdentificationKind))
	existing.IdentificationNumber = strings.TrimSpace(req.IdentificationNumber)
	existing.GivenName = strings.TrimSpace(req.GivenName)
	existing.Surname = strings.TrimSpace(req.Surname)
	existing.Email = email
	existing.BirthDate = birthDate
	existing.PrepareForUpdate(time.Now().UTC())

	updated, err := s.clientRepo.Update(ctx, existing)
	if err != nil {
		logger.Error("client service update client repository failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.ClientResponse]("failed to update client", err)
	}

	accountCount, err := s.countAccounts(ctx, id)
	if err != nil {
		return failure[models.ClientResponse]("failed to update client", err)
	}

	logger.Info("client service update client success", logger.Fields{
		"clientId": updated.ID,
	})

	return commons.SuccessResponse("client updated successfully", models.NewClientResponse(updated, accountCount)), nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int64) (commons.Response[models.DeleteClientResponse], error) {
	logger.Info("client service delete client request", logger.Fields{
		"clientId": id,
	})

	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		logger.Error("client service delete client lookup failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.DeleteClientResponse]("failed to delete client", err)
	}

	accountCount, err := s.countAccounts(ctx, id)
	if err != nil {
		logger.Error("client service delete client accounts check failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.DeleteClientResponse]("failed to delete client", err)
	}
	if accountCount > 0 {
		return failure[models.DeleteClientResponse]("failed to delete client", domain.ErrHasLinkedAccounts)
	}

	if err := s.clientRepo.DeleteByID(ctx, id); err != nil {
		logger.Error("client service delete client repository failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.DeleteClientResponse]("failed to delete client", err)
	}

	logger.Info("client service delete client success", logger.Fields{
		"clientId": id,
	})

	return commons.SuccessResponse("client deleted successfully", models.DeleteClientResponse{ID: id, Deleted: true}), nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (commons.Response[models.ClientResponse], error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("client service get client failed", err, logger.Fields{
			"clientId": id,
		})
		return failure[models.ClientResponse]("failed to get client", err)
	}

	accountCount, err := s.countAccounts(ctx, id)
	if err != nil {
		return failure[models.ClientResponse]("failed to get client", err)
	}

	return commons.SuccessResponse("client fetched successfully", models.NewClientResponse(client, accountCount)), nil
}

func (s *ClientService) ListClients(ctx context.Context) (commons.Response[[]models.ClientResponse], error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		logger.Error("client service list clients failed", err, nil)
		return failure[[]models.ClientResponse]("failed to list clients", err)
	}

	responses := make([]models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		accountCount, err := s.countAccounts(ctx, client.ID)
		if err != nil {
			return failure[[]models.ClientResponse]("failed to list clients", err)
		}
		responses = append(responses, models.NewClientResponse(client, accountCount))
	}

	return commons.SuccessResponse("clients fetched successfully", responses), nil
}

func (s *ClientService) countAccounts(ctx context.Context, clientID int64) (int, error) {
	accounts, err := s.accountRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}
