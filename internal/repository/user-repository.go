package repository

import (
	"errors"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	SaveUser(user *domain.User) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, error)
	FindUserByReferralLink(link string) (*domain.User, error)
	ListUsers() ([]domain.User, error)

	AppendReferredPoint(rp *domain.ReferredPoint) error
	ReferredPointsFor(referrerID uint) ([]domain.ReferredPoint, error)
	ZeroReferredPoints(referrerID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Save(user).Error
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByReferralLink(link string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Where("referral_link = ?", link).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) AppendReferredPoint(rp *domain.ReferredPoint) error {
	if rp == nil {
		return errors.New("nil referred point")
	}
	return r.db.Create(rp).Error
}

func (r *userRepository) ReferredPointsFor(referrerID uint) ([]domain.ReferredPoint, error) {
	var points []domain.ReferredPoint
	err := r.db.Where("referrer_id = ?", referrerID).Order("awarded_at").Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *userRepository) ZeroReferredPoints(referrerID uint) error {
	return r.db.Model(&domain.ReferredPoint{}).
		Where("referrer_id = ?", referrerID).
		Update("points", 0).Error
}
