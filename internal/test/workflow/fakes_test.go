package workflow_test

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// fakeStore is an in-memory stand-in for the Postgres store.
type fakeStore struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*models.Order
	users     map[uuid.UUID]*models.User
	printers  map[uuid.UUID]*models.Printer
	companies map[uuid.UUID]*models.ShippingCompany

	failWrites error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[uuid.UUID]*models.Order),
		users:     make(map[uuid.UUID]*models.User),
		printers:  make(map[uuid.UUID]*models.Printer),
		companies: make(map[uuid.UUID]*models.ShippingCompany),
	}
}

func (s *fakeStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return order.Clone(), nil
}

func (s *fakeStore) InsertOrder(order *models.Order) error {
	if s.failWrites != nil {
		return s.failWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order.Clone()
	return nil
}

func (s *fakeStore) UpdateOrder(order *models.Order) error {
	if s.failWrites != nil {
		return s.failWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return fmt.Errorf("order %s: %w", order.ID, models.ErrNotFound)
	}
	s.orders[order.ID] = order.Clone()
	return nil
}

func (s *fakeStore) DeleteOrder(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

func (s *fakeStore) GetUser(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) GetPrinter(id uuid.UUID) (*models.Printer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	printer, ok := s.printers[id]
	if !ok {
		return nil, fmt.Errorf("printer %s: %w", id, models.ErrNotFound)
	}
	copied := *printer
	return &copied, nil
}

func (s *fakeStore) GetShippingCompany(id uuid.UUID) (*models.ShippingCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[id]
	if !ok {
		return nil, fmt.Errorf("shipping company %s: %w", id, models.ErrNotFound)
	}
	copied := *company
	return &copied, nil
}

func (s *fakeStore) addUser(role models.UserRole, name string) *models.User {
	user := &models.User{ID: uuid.New(), Name: name, Email: name + "@team.local", Role: role}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addPrinter(name string) *models.Printer {
	printer := &models.Printer{ID: uuid.New(), Name: name}
	s.printers[printer.ID] = printer
	return printer
}

func (s *fakeStore) addCompany(name string, shippingType models.ShippingType) *models.ShippingCompany {
	company := &models.ShippingCompany{ID: uuid.New(), Name: name, Type: shippingType}
	s.companies[company.ID] = company
	return company
}

// fakeFiles records uploads and can be told to fail.
type fakeFiles struct {
	uploads    []string
	deleted    []uuid.UUID
	fail       error
	failDelete error
}

func (f *fakeFiles) Upload(orderID uuid.UUID, filename string, data []byte) (models.FileRef, error) {
	if f.fail != nil {
		return models.FileRef{}, f.fail
	}
	f.uploads = append(f.uploads, filename)
	return models.FileRef{
		Name: filename,
		URL:  fmt.Sprintf("https://files.local/%s/%s", orderID, filename),
	}, nil
}

func (f *fakeFiles) DeleteOrderFiles(orderID uuid.UUID) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	f.deleted = append(f.deleted, orderID)
	return nil
}

// fakeEvents collects published lifecycle events.
type fakeEvents struct {
	events   []string
	payloads []map[string]interface{}
}

func (e *fakeEvents) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	e.events = append(e.events, event)
	e.payloads = append(e.payloads, payload)
	return nil
}

func actorFor(user *models.User) models.Actor {
	return models.Actor{ID: user.ID, Name: user.Name, Role: user.Role}
}

func validOrderRequest(country string) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Customer: models.Customer{
			Name:    "Aya Hassan",
			Address: "14 Garden St",
			Country: country,
			Phone:   "0123456789",
		},
		Story: models.StoryDetails{
			OwnerName: "Omar",
			Details:   "A story about Omar and the sea",
			Type:      "Adventure",
			Copies:    1,
		},
		Price: 250,
	}
}

func pngUpload(name string) models.FileUpload {
	return models.FileUpload{Name: name, Data: []byte{0x89, 0x50, 0x4e, 0x47}}
}
