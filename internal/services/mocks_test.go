package services_test

import (
	"github.com/bmxadventure/user_service/internal/domain"
)

// mockUserRepo is an in-memory repository.UserRepository for unit testing.
type mockUserRepo struct {
	users   map[uint]*domain.User
	points  []*domain.ReferredPoint
	nextID  uint
	saveErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*domain.User{}}
}

func (m *mockUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) SaveUser(user *domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) FindUserByID(userID uint) (*domain.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) FindUserByReferralLink(link string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ReferralLink != nil && *u.ReferralLink == link {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) ListUsers() ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) AppendReferredPoint(rp *domain.ReferredPoint) error {
	rp.ID = uint(len(m.points) + 1)
	m.points = append(m.points, rp)
	return nil
}

func (m *mockUserRepo) ReferredPointsFor(referrerID uint) ([]domain.ReferredPoint, error) {
	var out []domain.ReferredPoint
	for _, p := range m.points {
		if p.ReferrerID == referrerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ZeroReferredPoints(referrerID uint) error {
	for _, p := range m.points {
		if p.ReferrerID == referrerID {
			p.Points = 0
		}
	}
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

// mockNotifier records every send instead of touching a broker.
type mockNotifier struct {
	sent    []sentMail
	sendErr error
}

func (m *mockNotifier) Send(to, subject, htmlBody string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

// mockFeedbackRepo keeps at most the entries created since the last delete.
type mockFeedbackRepo struct {
	entries map[uint][]*domain.Feedback
	nextID  uint
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{entries: map[uint][]*domain.Feedback{}}
}

func (m *mockFeedbackRepo) CreateFeedback(f *domain.Feedback) (*domain.Feedback, error) {
	m.nextID++
	f.ID = m.nextID
	m.entries[f.UserID] = append(m.entries[f.UserID], f)
	return f, nil
}

func (m *mockFeedbackRepo) DeleteByUserID(userID uint) error {
	delete(m.entries, userID)
	return nil
}
