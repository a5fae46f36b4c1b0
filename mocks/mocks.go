package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizlink/events"
	"bizlink/models"
	"bizlink/store"
)

// MockUserStore mocks user directory lookups.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) ListEmails(ctx context.Context, excludeUserID string) ([]string, error) {
	args := m.Called(ctx, excludeUserID)
	var emails []string
	if val := args.Get(0); val != nil {
		emails = val.([]string)
	}
	return emails, args.Error(1)
}

// MockFriendshipStore mocks the social graph store.
type MockFriendshipStore struct {
	mock.Mock
}

func (m *MockFriendshipStore) CreateRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error) {
	args := m.Called(ctx, requesterID, recipientID)
	var f *models.Friendship
	if val := args.Get(0); val != nil {
		f = val.(*models.Friendship)
	}
	return f, args.Error(1)
}

func (m *MockFriendshipStore) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	args := m.Called(ctx, id)
	var f *models.Friendship
	if val := args.Get(0); val != nil {
		f = val.(*models.Friendship)
	}
	return f, args.Error(1)
}

func (m *MockFriendshipStore) Accept(ctx context.Context, id string) (*models.Friendship, error) {
	args := m.Called(ctx, id)
	var f *models.Friendship
	if val := args.Get(0); val != nil {
		f = val.(*models.Friendship)
	}
	return f, args.Error(1)
}

func (m *MockFriendshipStore) ExistsPair(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendshipStore) HasAccepted(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendshipStore) ListPending(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error) {
	args := m.Called(ctx, userID)
	var list []models.FriendshipWithUsers
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendshipWithUsers)
	}
	return list, args.Error(1)
}

func (m *MockFriendshipStore) ListAccepted(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error) {
	args := m.Called(ctx, userID)
	var list []models.FriendshipWithUsers
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendshipWithUsers)
	}
	return list, args.Error(1)
}

// MockMessageStore mocks chat message persistence.
type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) Create(ctx context.Context, senderID, recipientID, text string) (*models.Message, error) {
	args := m.Called(ctx, senderID, recipientID, text)
	var msg *models.Message
	if val := args.Get(0); val != nil {
		msg = val.(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *MockMessageStore) HistoryFor(ctx context.Context, userID string) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	var messages []models.Message
	if val := args.Get(0); val != nil {
		messages = val.([]models.Message)
	}
	return messages, args.Error(1)
}

// MockPublisher mocks the AMQP event publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCustomerStore mocks customer CRUD.
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	var list []models.Customer
	if val := args.Get(0); val != nil {
		list = val.([]models.Customer)
	}
	return list, args.Error(1)
}

func (m *MockCustomerStore) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	var c *models.Customer
	if val := args.Get(0); val != nil {
		c = val.(*models.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerStore) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	args := m.Called(ctx, customer)
	var c *models.Customer
	if val := args.Get(0); val != nil {
		c = val.(*models.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerStore) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	args := m.Called(ctx, customer)
	var c *models.Customer
	if val := args.Get(0); val != nil {
		c = val.(*models.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Compile-time assertions
var (
	_ store.UserStore       = (*MockUserStore)(nil)
	_ store.FriendshipStore = (*MockFriendshipStore)(nil)
	_ store.MessageStore    = (*MockMessageStore)(nil)
	_ store.CustomerStore   = (*MockCustomerStore)(nil)
	_ events.Publisher      = (*MockPublisher)(nil)
)
