package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	id           uint
	email        string
	passwordHash string
	firstName    string
	lastName     string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func New(email, firstName, lastName string) User {
	return User{
		email:     normalizeEmail(email),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		isActive:  true,
	}
}

func Hydrate(
	id uint,
	email string,
	passwordHash string,
	firstName string,
	lastName string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:           id,
		email:        normalizeEmail(email),
		passwordHash: passwordHash,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u User) ID() uint             { return u.id }
func (u User) Email() string        { return u.email }
func (u User) PasswordHash() string { return u.passwordHash }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) IsActive() bool       { return u.isActive }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }

func (u User) SetPassword(password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return u, err
	}
	u.passwordHash = string(hash)
	return u, nil
}

func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
