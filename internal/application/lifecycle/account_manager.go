package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campmanager/backend/internal/domain/finance"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskAttachAccount is the queue task that appends a receivable account to a customer
const TaskAttachAccount = "customer.attach_account"

// attachRetries bounds reload-and-retry on a version conflict inside one task run
const attachRetries = 3

// TaskQueue submits background tasks
type TaskQueue interface {
	Enqueue(ctx context.Context, name, key string, payload any) (bool, error)
}

// AttachAccountTask is the payload of TaskAttachAccount. It carries only
// identifiers; the customer is re-read when the task runs.
type AttachAccountTask struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Company    string    `json:"company"`
	Account    string    `json:"account"`
}

// Key identifies the task for de-duplication
func (t AttachAccountTask) Key() string {
	return fmt.Sprintf("%s:%s:%s", t.CustomerID, t.Company, t.Account)
}

// AccountManager keeps one "Debtors {CUR}" receivable account per currency
// under the active company and attaches it to customers
type AccountManager struct {
	companies  finance.CompanyRepository
	accounts   finance.AccountRepository
	currencies finance.CurrencyRepository
	customers  partner.CustomerRepository
	queue      TaskQueue
	bus        shared.EventPublisher
	logger     *zap.Logger
}

// NewAccountManager creates a new AccountManager
func NewAccountManager(
	companies finance.CompanyRepository,
	accounts finance.AccountRepository,
	currencies finance.CurrencyRepository,
	customers partner.CustomerRepository,
	queue TaskQueue,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *AccountManager {
	return &AccountManager{
		companies:  companies,
		accounts:   accounts,
		currencies: currencies,
		customers:  customers,
		queue:      queue,
		bus:        bus,
		logger:     logger,
	}
}

// EnsureAccount returns the name of the receivable account for currency,
// creating it under "Accounts Receivable - {ABBR}" when missing.
// Calling it again for the same currency returns the same account.
func (m *AccountManager) EnsureAccount(ctx context.Context, currency string) (string, error) {
	account, err := m.ensureReceivable(ctx, currency)
	if err != nil {
		return "", err
	}
	return account.Name, nil
}

func (m *AccountManager) ensureReceivable(ctx context.Context, currency string) (*finance.Account, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "ensure", "currency", currency)
	defer span.End()

	company, err := m.companies.FindActive(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			err = shared.ErrNoActiveCompany
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	parentName := finance.ReceivableParentName(company.Abbr)
	parent, err := m.accounts.FindByName(ctx, parentName)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("find receivable parent: %w", err)
	}

	// A missing parent is a chart-of-accounts misconfiguration and fails here
	account, err := finance.NewReceivableAccount(company, parent, currency)
	if err != nil {
		logger.L(ctx).Error("cannot create receivable account",
			zap.String("company", company.Name),
			zap.String("parent", parentName),
			zap.String("currency", currency),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}

	stored, created, err := m.accounts.InsertIfAbsent(ctx, account)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("insert receivable account: %w", err)
	}
	if created {
		logger.L(ctx).Info("receivable account created",
			zap.String("account", stored.Name),
			zap.String("company", stored.Company),
			zap.String("currency", stored.Currency),
		)
	}
	telemetry.SetAttributes(span, "account", stored.Name, "created", created)
	return stored, nil
}

// ScheduleAttach enables currency, ensures its receivable account and
// enqueues the attachment of that account to the customer
func (m *AccountManager) ScheduleAttach(ctx context.Context, customerID uuid.UUID, currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := m.currencies.Enable(ctx, currency); err != nil {
		return fmt.Errorf("enable currency %s: %w", currency, err)
	}

	account, err := m.ensureReceivable(ctx, currency)
	if err != nil {
		return err
	}

	task := AttachAccountTask{
		CustomerID: customerID,
		Company:    account.Company,
		Account:    account.Name,
	}
	queued, err := m.queue.Enqueue(ctx, TaskAttachAccount, task.Key(), task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskAttachAccount, err)
	}
	logger.L(ctx).Debug("receivable attachment scheduled",
		zap.String("customer_id", customerID.String()),
		zap.String("account", account.Name),
		zap.Bool("queued", queued),
	)
	return nil
}

// HandleAttachAccount is the queue handler for TaskAttachAccount
func (m *AccountManager) HandleAttachAccount(ctx context.Context, payload json.RawMessage) error {
	var task AttachAccountTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return fmt.Errorf("decode %s payload: %w", TaskAttachAccount, err)
	}
	return m.AttachAccount(ctx, task)
}

// AttachAccount appends {company, account} to the customer's accounts unless
// an identical entry exists, and saves the customer
func (m *AccountManager) AttachAccount(ctx context.Context, task AttachAccountTask) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "attach",
		"customer_id", task.CustomerID, "account", task.Account)
	defer span.End()

	var err error
	for attempt := 1; attempt <= attachRetries; attempt++ {
		err = m.attachOnce(ctx, task)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
		logger.L(ctx).Debug("customer changed during attach, reloading",
			zap.String("customer_id", task.CustomerID.String()),
			zap.Int("attempt", attempt),
		)
	}
	telemetry.RecordError(span, err)
	return err
}

func (m *AccountManager) attachOnce(ctx context.Context, task AttachAccountTask) error {
	customer, err := m.customers.FindByID(ctx, task.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %s: %w", task.CustomerID, err)
	}
	if !customer.AttachAccount(task.Company, task.Account) {
		logger.L(ctx).Debug("receivable account already attached",
			zap.String("customer", customer.Name),
			zap.String("account", task.Account),
		)
		return nil
	}
	if err := m.customers.SaveWithLock(ctx, customer); err != nil {
		return err
	}
	publishEvents(ctx, m.bus, customer)

	logger.L(ctx).Info("receivable account attached",
		zap.String("customer", customer.Name),
		zap.String("company", task.Company),
		zap.String("account", task.Account),
	)
	return nil
}
