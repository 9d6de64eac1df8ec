package services_test

import (
	"context"

	"github.com/api-sage/retail-ledger/internal/domain"
)

type clientRepoStub struct {
	createFn             func(ctx context.Context, client domain.Client) (domain.Client, error)
	updateFn             func(ctx context.Context, client domain.Client) (domain.Client, error)
	deleteByIDFn         func(ctx context.Context, id int64) error
	findByIDFn           func(ctx context.Context, id int64) (domain.Client, error)
	findByEmailFn        func(ctx context.Context, email string) (domain.Client, error)
	existsByIdentifierFn func(ctx context.Context, identificationNumber string) (bool, error)
	existsByEmailFn      func(ctx context.Context, email string) (bool, error)
	findAllFn            func(ctx context.Context) ([]domain.Client, error)
}

func (s clientRepoStub) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	if s.createFn != nil {
		return s.createFn(ctx, client)
	}
	return client, nil
}

func (s clientRepoStub) Update(ctx context.Context, client domain.Client) (domain.Client, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, client)
	}
	return client, nil
}

func (s clientRepoStub) DeleteByID(ctx context.Context, id int64) error {
	if s.deleteByIDFn != nil {
		return s.deleteByIDFn(ctx, id)
	}
	return nil
}

func (s clientRepoStub) FindByID(ctx context.Context, id int64) (domain.Client, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return domain.Client{ID: id}, nil
}

func (s clientRepoStub) FindByEmail(ctx context.Context, email string) (domain.Client, error) {
	if s.findByEmailFn != nil {
		return s.findByEmailFn(ctx, email)
	}
	return domain.Client{}, domain.ErrRecordNotFound
}

func (s clientRepoStub) ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error) {
	if s.existsByIdentifierFn != nil {
		return s.existsByIdentifierFn(ctx, identificationNumber)
	}
	return false, nil
}

func (s clientRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if s.existsByEmailFn != nil {
		return s.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (s clientRepoStub) FindAll(ctx context.Context) ([]domain.Client, error) {
	if s.findAllFn != nil {
		return s.findAllFn(ctx)
	}
	return nil, nil
}

type accountRepoStub struct {
	createFn         func(ctx context.Context, account domain.Account) (domain.Account, error)
	updateFn         func(ctx context.Context, account domain.Account) (domain.Account, error)
	findByIDFn       func(ctx context.Context, id int64) (domain.Account, error)
	findByNumberFn   func(ctx context.Context, number string) (domain.Account, error)
	existsByNumberFn func(ctx context.Context, number string) (bool, error)
	findByClientIDFn func(ctx context.Context, clientID int64) ([]domain.Account, error)
	findAllFn        func(ctx context.Context) ([]domain.Account, error)
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account)
	}
	account.ID = 1
	return account, nil
}

func (s accountRepoStub) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, account)
	}
	return account, nil
}

func (s accountRepoStub) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return domain.Account{ID: id}, nil
}

func (s accountRepoStub) FindByNumber(ctx context.Context, number string) (domain.Account, error) {
	if s.findByNumberFn != nil {
		return s.findByNumberFn(ctx, number)
	}
	return domain.Account{Number: number}, nil
}

func (s accountRepoStub) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if s.existsByNumberFn != nil {
		return s.existsByNumberFn(ctx, number)
	}
	return false, nil
}

func (s accountRepoStub) FindByClientID(ctx context.Context, clientID int64) ([]domain.Account, error) {
	if s.findByClientIDFn != nil {
		return s.findByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (s accountRepoStub) FindAll(ctx context.Context) ([]domain.Account, error) {
	if s.findAllFn != nil {
		return s.findAllFn(ctx)
	}
	return nil, nil
}

type transactionRepoStub struct {
	createDepositFn    func(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	createWithdrawalFn func(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	createTransferFn   func(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	findByIDFn         func(ctx context.Context, id int64) (domain.Transaction, error)
	findAllByAccountFn func(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	findAllFn          func(ctx context.Context) ([]domain.Transaction, error)
}

func (s transactionRepoStub) CreateDeposit(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if s.createDepositFn != nil {
		return s.createDepositFn(ctx, txn)
	}
	txn.ID = 1
	return txn, nil
}

func (s transactionRepoStub) CreateWithdrawal(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if s.createWithdrawalFn != nil {
		return s.createWithdrawalFn(ctx, txn)
	}
	txn.ID = 1
	return txn, nil
}

func (s transactionRepoStub) CreateTransfer(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if s.createTransferFn != nil {
		return s.createTransferFn(ctx, txn)
	}
	txn.ID = 1
	return txn, nil
}

func (s transactionRepoStub) FindByID(ctx context.Context, id int64) (domain.Transaction, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return domain.Transaction{ID: id}, nil
}

func (s transactionRepoStub) FindAllByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if s.findAllByAccountFn != nil {
		return s.findAllByAccountFn(ctx, accountID)
	}
	return nil, nil
}

func (s transactionRepoStub) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	if s.findAllFn != nil {
		return s.findAllFn(ctx)
	}
	return nil, nil
}

type generatorStub struct {
	generateFn func(accountType domain.AccountType) (string, error)
}

func (s generatorStub) Generate(accountType domain.AccountType) (string, error) {
	if s.generateFn != nil {
		return s.generateFn(accountType)
	}
	return accountType.NumberPrefix() + "00000000", nil
}
