package lifecycle

import (
	"context"
	"strings"
	"sync"

	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/finance"
	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// memOrganizations is an in-memory OrganizationRepository with the same
// insert-if-absent and version semantics as the gorm repository
type memOrganizations struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*organization.Organization
	saveErr error
}

func newMemOrganizations() *memOrganizations {
	return &memOrganizations{byID: map[uuid.UUID]*organization.Organization{}}
}

func (r *memOrganizations) FindByID(_ context.Context, id uuid.UUID) (*organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.byID[id]; ok {
		return o.Clone(), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memOrganizations) FindByName(_ context.Context, kind organization.Kind, name string) (*organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o := r.byNameLocked(kind, name); o != nil {
		return o.Clone(), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memOrganizations) byNameLocked(kind organization.Kind, name string) *organization.Organization {
	for _, o := range r.byID {
		if o.Kind == kind && o.Name == name {
			return o
		}
	}
	return nil
}

func (r *memOrganizations) FindAll(_ context.Context, kind organization.Kind, _ shared.Filter) ([]organization.Organization, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []organization.Organization
	for _, o := range r.byID {
		if kind == "" || o.Kind == kind {
			out = append(out, *o.Clone())
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrganizations) InsertIfAbsent(_ context.Context, org *organization.Organization) (*organization.Organization, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.byNameLocked(org.Kind, org.Name); existing != nil {
		return existing.Clone(), false, nil
	}
	r.byID[org.ID] = org.Clone()
	return org, true, nil
}

func (r *memOrganizations) SaveWithLock(_ context.Context, org *organization.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.byID[org.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != org.Version {
		return shared.ErrConcurrencyConflict
	}
	org.IncrementVersion()
	r.byID[org.ID] = org.Clone()
	return nil
}

func (r *memOrganizations) SetProvisioned(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	stored.CustomerAndOnboardingCreated = true
	return nil
}

func (r *memOrganizations) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memLeads struct {
	mu   sync.Mutex
	byID map[uuid.UUID]crm.Lead
}

func newMemLeads() *memLeads {
	return &memLeads{byID: map[uuid.UUID]crm.Lead{}}
}

func copyLead(l crm.Lead) *crm.Lead {
	l.ClearDomainEvents()
	return &l
}

func (r *memLeads) FindByID(_ context.Context, id uuid.UUID) (*crm.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.byID[id]; ok {
		return copyLead(l), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memLeads) FindByName(_ context.Context, name string) (*crm.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.byID {
		if l.Name == name {
			return copyLead(l), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLeads) InsertIfAbsent(ctx context.Context, lead *crm.Lead) (*crm.Lead, bool, error) {
	if existing, err := r.FindByName(ctx, lead.Name); err == nil {
		return existing, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[lead.ID] = *copyLead(*lead)
	return lead, true, nil
}

func (r *memLeads) SaveWithLock(_ context.Context, lead *crm.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[lead.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != lead.Version {
		return shared.ErrConcurrencyConflict
	}
	lead.IncrementVersion()
	r.byID[lead.ID] = *copyLead(*lead)
	return nil
}

func (r *memLeads) SetConverted(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	stored.Converted = true
	r.byID[id] = stored
	return nil
}

type memCustomers struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]partner.Customer
	insertErr error
}

func newMemCustomers() *memCustomers {
	return &memCustomers{byID: map[uuid.UUID]partner.Customer{}}
}

func copyCustomer(c partner.Customer) *partner.Customer {
	c.Accounts = append([]partner.AccountEntry(nil), c.Accounts...)
	c.ClearDomainEvents()
	return &c
}

func (r *memCustomers) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		return copyCustomer(c), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomers) FindByName(_ context.Context, name string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Name == name {
			return copyCustomer(c), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomers) FindByOrganization(_ context.Context, kind organization.Kind, name string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		k, link := c.OrganizationLink()
		if k == kind && link == name {
			return copyCustomer(c), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomers) InsertIfAbsent(ctx context.Context, customer *partner.Customer) (*partner.Customer, bool, error) {
	if r.insertErr != nil {
		return nil, false, r.insertErr
	}
	kind, link := customer.OrganizationLink()
	if existing, err := r.FindByOrganization(ctx, kind, link); err == nil {
		return existing, false, nil
	}
	if existing, err := r.FindByName(ctx, customer.Name); err == nil {
		return existing, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[customer.ID] = *copyCustomer(*customer)
	return customer, true, nil
}

func (r *memCustomers) SaveWithLock(_ context.Context, customer *partner.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[customer.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != customer.Version {
		return shared.ErrConcurrencyConflict
	}
	customer.IncrementVersion()
	r.byID[customer.ID] = *copyCustomer(*customer)
	return nil
}

func (r *memCustomers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memOnboardings struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*onboarding.Onboarding
	saveErr error
}

func newMemOnboardings() *memOnboardings {
	return &memOnboardings{byID: map[uuid.UUID]*onboarding.Onboarding{}}
}

func (r *memOnboardings) FindByID(_ context.Context, id uuid.UUID) (*onboarding.Onboarding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.byID[id]; ok {
		return o.Clone(), nil
	}
	return nil, shared.ErrNotFound
}

func (r *memOnboardings) FindByTitle(_ context.Context, title string) (*onboarding.Onboarding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.Title == title {
			return o.Clone(), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOnboardings) FindAll(_ context.Context, phase *onboarding.Phase, _ shared.Filter) ([]onboarding.Onboarding, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []onboarding.Onboarding
	for _, o := range r.byID {
		if phase == nil || o.Phase == *phase {
			out = append(out, *o.Clone())
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOnboardings) InsertIfAbsent(ctx context.Context, ob *onboarding.Onboarding) (*onboarding.Onboarding, bool, error) {
	if existing, err := r.FindByTitle(ctx, ob.Title); err == nil {
		return existing, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[ob.ID] = ob.Clone()
	return ob, true, nil
}

func (r *memOnboardings) SaveWithLock(_ context.Context, ob *onboarding.Onboarding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.byID[ob.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != ob.Version {
		return shared.ErrConcurrencyConflict
	}
	ob.IncrementVersion()
	r.byID[ob.ID] = ob.Clone()
	return nil
}

func (r *memOnboardings) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// snapshotTx restores the organization and customer stores when fn fails
type snapshotTx struct {
	orgs      *memOrganizations
	customers *memCustomers
}

func (t snapshotTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.orgs.mu.Lock()
	orgs := make(map[uuid.UUID]*organization.Organization, len(t.orgs.byID))
	for id, o := range t.orgs.byID {
		orgs[id] = o.Clone()
	}
	t.orgs.mu.Unlock()

	t.customers.mu.Lock()
	customers := make(map[uuid.UUID]partner.Customer, len(t.customers.byID))
	for id, c := range t.customers.byID {
		customers[id] = *copyCustomer(c)
	}
	t.customers.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.orgs.mu.Lock()
		t.orgs.byID = orgs
		t.orgs.mu.Unlock()
		t.customers.mu.Lock()
		t.customers.byID = customers
		t.customers.mu.Unlock()
		return err
	}
	return nil
}

type memAccounts struct {
	mu     sync.Mutex
	byName map[string]finance.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byName: map[string]finance.Account{}}
}

func (r *memAccounts) FindByName(_ context.Context, name string) (*finance.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byName[name]; ok {
		return &a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memAccounts) FindChild(_ context.Context, company, parent, accountName string) (*finance.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byName {
		if a.Company == company && a.ParentAccount == parent && a.AccountName == accountName {
			return &a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memAccounts) CountChildren(_ context.Context, company, parent string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.byName {
		if a.Company == company && a.ParentAccount == parent {
			n++
		}
	}
	return n, nil
}

func (r *memAccounts) InsertIfAbsent(ctx context.Context, account *finance.Account) (*finance.Account, bool, error) {
	if existing, err := r.FindChild(ctx, account.Company, account.ParentAccount, account.AccountName); err == nil {
		return existing, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[account.Name] = *account
	return account, true, nil
}

type memCompanies struct {
	companies []*finance.Company
}

func (r *memCompanies) FindActive(_ context.Context) (*finance.Company, error) {
	if len(r.companies) == 0 {
		return nil, shared.ErrNotFound
	}
	return r.companies[0], nil
}

func (r *memCompanies) Save(_ context.Context, company *finance.Company) error {
	r.companies = append(r.companies, company)
	return nil
}

type memCurrencies struct {
	mu      sync.Mutex
	enabled map[string]bool
}

func newMemCurrencies() *memCurrencies {
	return &memCurrencies{enabled: map[string]bool{}}
}

func (r *memCurrencies) FindByCode(_ context.Context, code string) (*finance.Currency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enabled, ok := r.enabled[code]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &finance.Currency{Code: code, Enabled: enabled}, nil
}

func (r *memCurrencies) Enable(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[code] = true
	return nil
}

// stubResolver answers from fixed maps and defaults to USD
type stubResolver struct {
	currencies map[string]string
	discounts  map[string]decimal.Decimal
}

func (r stubResolver) CurrencyForCountry(country string) string {
	if c, ok := r.currencies[strings.ToLower(country)]; ok {
		return c
	}
	return "USD"
}

func (r stubResolver) DiscountForAssociation(association string) (decimal.Decimal, bool) {
	d, ok := r.discounts[association]
	return d, ok
}

// recordingBus keeps every published event
type recordingBus struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (b *recordingBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
	return nil
}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.EventType()
	}
	return out
}

// MockTaskQueue is a mock implementation of TaskQueue
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, name, key string, payload any) (bool, error) {
	args := m.Called(ctx, name, key, payload)
	return args.Bool(0), args.Error(1)
}

// fixture wires the lifecycle services over in-memory repositories
type fixture struct {
	orgs        *memOrganizations
	leads       *memLeads
	customers   *memCustomers
	onboardings *memOnboardings
	accounts    *memAccounts
	companies   *memCompanies
	currencies  *memCurrencies
	queue       *MockTaskQueue
	bus         *recordingBus

	accountManager *AccountManager
	sync           *CustomerSynchronizer
	provisioner    *Provisioner
	organization   *OrganizationService
	conversion     *ConversionService
	onboarding     *OnboardingService
	lead           *LeadService
	customer       *CustomerService
	form           *FormService
}

func newFixture() *fixture {
	logger := zap.NewNop()
	f := &fixture{
		orgs:        newMemOrganizations(),
		leads:       newMemLeads(),
		customers:   newMemCustomers(),
		onboardings: newMemOnboardings(),
		accounts:    newMemAccounts(),
		companies:   &memCompanies{},
		currencies:  newMemCurrencies(),
		queue:       new(MockTaskQueue),
		bus:         &recordingBus{},
	}
	resolver := stubResolver{
		currencies: map[string]string{"germany": "EUR", "canada": "CAD", "united states": "USD"},
		discounts:  map[string]decimal.Decimal{"American Camp Association": decimal.NewFromInt(10)},
	}

	f.accountManager = NewAccountManager(f.companies, f.accounts, f.currencies, f.customers, f.queue, f.bus, logger)
	f.sync = NewCustomerSynchronizer(f.customers, f.accountManager, f.bus, logger)
	f.provisioner = NewProvisioner(f.orgs, f.customers, f.onboardings, onboarding.ComputePhase, f.bus, logger)
	f.organization = NewOrganizationService(f.orgs, resolver, f.provisioner, f.sync, f.bus, logger)
	f.conversion = NewConversionService(f.leads, f.organization, f.provisioner, f.bus, logger)
	f.onboarding = NewOnboardingService(f.onboardings, f.orgs, f.organization, onboarding.ComputePhase, snapshotTx{f.orgs, f.customers}, f.bus, logger)
	f.lead = NewLeadService(f.leads, f.conversion, f.bus, logger)
	f.customer = NewCustomerService(f.customers, f.accountManager, f.bus, logger)
	f.form = NewFormService(f.orgs, f.organization, logger)
	return f
}

// withLedger seeds company "Camp Pine Holdings" (CP) with its receivable group
func (f *fixture) withLedger() *finance.Company {
	company, err := finance.NewCompany("Camp Pine Holdings", "CP", "USD")
	if err != nil {
		panic(err)
	}
	f.companies.companies = append(f.companies.companies, company)
	group, err := finance.NewGroupAccount(company, receivableGroupName, finance.RootTypeAsset, finance.AccountTypeReceivable)
	if err != nil {
		panic(err)
	}
	f.accounts.byName[group.Name] = *group
	return company
}

// expectEnqueue accepts any attach task
func (f *fixture) expectEnqueue() {
	f.queue.On("Enqueue", mock.Anything, TaskAttachAccount, mock.AnythingOfType("string"), mock.AnythingOfType("lifecycle.AttachAccountTask")).
		Return(true, nil)
}

func noticeMessages(notices []Notice) []string {
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Message
	}
	return out
}
