package user

import (
	"time"

	"github.com/geocoder89/userhub/internal/optional"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds an unsaved user. ID and timestamps are left for the repository to assign.
func New(name, email string, age int) User {
	return User{
		Name:  name,
		Email: email,
		Age:   age,
	}
}

func (u User) IsNew() bool {
	return u.ID == 0
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,user_email"`
	Age   *int   `json:"age" binding:"required,min=0,max=150"`
}

// Patch is a partial update: absent fields are left unchanged.
type Patch struct {
	Name  optional.Value[string] `json:"name"`
	Email optional.Value[string] `json:"email"`
	Age   optional.Value[int]    `json:"age"`
}

func (p Patch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Email.IsSet() && !p.Age.IsSet()
}

// Apply returns a copy of u with every present field of the patch written over it.
func (p Patch) Apply(u User) User {
	u.Name = p.Name.OrElse(u.Name)
	u.Email = p.Email.OrElse(u.Email)
	u.Age = p.Age.OrElse(u.Age)

	return u
}
