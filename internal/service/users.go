package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/optional"
	"gopkg.in/yaml.v3"
)

type UsersRepository interface {
	Save(u *user.User) user.User
	FindByID(id int64) (user.User, bool)
	FindAll() []user.User
	Delete(id int64) bool
}

type UsersService struct {
	repo UsersRepository
	log  *slog.Logger
}

func NewUsersService(repo UsersRepository, log *slog.Logger) *UsersService {
	if log == nil {
		log = slog.Default()
	}

	return &UsersService{repo: repo, log: log}
}

func (s *UsersService) CreateUser(name, email string, age int) (user.User, error) {
	if err := validateFields(user.Patch{Email: optional.Some(email), Age: optional.Some(age)}); err != nil {
		return user.User{}, err
	}

	u := user.New(name, email, age)
	saved := s.repo.Save(&u)

	s.log.Debug("user created", "user_id", saved.ID)

	return saved, nil
}

func (s *UsersService) GetUser(id int64) (user.User, error) {
	u, ok := s.repo.FindByID(id)
	if !ok {
		return user.User{}, &user.NotFoundError{ID: id}
	}

	return u, nil
}

// UpdateUser applies the present fields of p. Every present field is validated
// before anything is written, so a rejected patch leaves the record untouched.
func (s *UsersService) UpdateUser(id int64, p user.Patch) (user.User, error) {
	current, err := s.GetUser(id)
	if err != nil {
		return user.User{}, err
	}

	if err := validateFields(p); err != nil {
		return user.User{}, err
	}

	next := p.Apply(current)
	saved := s.repo.Save(&next)

	s.log.Debug("user updated", "user_id", saved.ID)

	return saved, nil
}

func (s *UsersService) DeleteUser(id int64) (bool, error) {
	if _, err := s.GetUser(id); err != nil {
		return false, err
	}

	deleted := s.repo.Delete(id)

	s.log.Debug("user deleted", "user_id", id, "deleted", deleted)

	return deleted, nil
}

func (s *UsersService) ListUsers() []user.User {
	return s.repo.FindAll()
}

// ExportJSON dumps every user as an indented JSON array of user.Export.
func (s *UsersService) ExportJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(user.ExportAll(s.ListUsers())); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (s *UsersService) ExportYAML() ([]byte, error) {
	b, err := yaml.Marshal(user.ExportAll(s.ListUsers()))
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	return b, nil
}

// name has no format rule; email then age are checked in that order
func validateFields(p user.Patch) error {
	if email, ok := p.Email.Get(); ok && !user.ValidateEmail(email) {
		return user.NewValidationError("email", email)
	}

	if age, ok := p.Age.Get(); ok && !user.ValidateAge(age) {
		return user.NewValidationError("age", age)
	}

	return nil
}
