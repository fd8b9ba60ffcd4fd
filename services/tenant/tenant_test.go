package tenant

import (
	"sync"

	accountRepo "bookable/database/repository/account"
	"bookable/models"
)

// fakeAccountRepo is an in-memory AccountRepository for tests. raceOnce lets
// a test make SetSubdomain lose the uniqueness race exactly once per label,
// simulating a concurrent writer that claimed it between probe and write.
type fakeAccountRepo struct {
	mu         sync.Mutex
	accounts   map[string]*models.Account
	subdomains map[string]string // label -> account id
	raceOnce   map[string]bool

	getBySubdomainCalls int
	getByIDCalls        int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:   make(map[string]*models.Account),
		subdomains: make(map[string]string),
		raceOnce:   make(map[string]bool),
	}
}

func (f *fakeAccountRepo) add(account *models.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account
	if account.Subdomain != "" {
		f.subdomains[account.Subdomain] = account.ID
	}
}

func (f *fakeAccountRepo) Create(account *models.Account) error {
	f.add(account)
	return nil
}

func (f *fakeAccountRepo) GetByID(id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByIDCalls++
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByEmail(email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetBySubdomain(subdomain string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getBySubdomainCalls++
	if id, ok := f.subdomains[subdomain]; ok {
		return f.accounts[id], nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) SetSubdomain(accountID, subdomain string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceOnce[subdomain] {
		delete(f.raceOnce, subdomain)
		return accountRepo.ErrSubdomainTaken
	}
	if owner, ok := f.subdomains[subdomain]; ok && owner != accountID {
		return accountRepo.ErrSubdomainTaken
	}
	f.subdomains[subdomain] = accountID
	if a, ok := f.accounts[accountID]; ok {
		a.Subdomain = subdomain
	}
	return nil
}

func (f *fakeAccountRepo) SubdomainExists(subdomain string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subdomains[subdomain]
	return ok, nil
}

func (f *fakeAccountRepo) ListMissingSubdomain() ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, a := range f.accounts {
		if a.Subdomain == "" {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) UpdateBookingPage(accountID string, page *models.BookingPage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[accountID]; ok {
		a.BookingPage = page
	}
	return nil
}
