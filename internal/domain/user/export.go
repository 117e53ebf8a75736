package user

import "time"

// Export is the flat, snake_case view used when dumping users.
type Export struct {
	UserID    int64  `json:"user_id" yaml:"user_id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Age       int    `json:"age" yaml:"age"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

func (u User) Export() Export {
	return Export{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func ExportAll(users []User) []Export {
	out := make([]Export, 0, len(users))
	for _, u := range users {
		out = append(out, u.Export())
	}

	return out
}
