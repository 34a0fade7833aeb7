package model

import "strings"

// User — данные пользователя, как их отдаёт бэкенд (/api/auth/login/, /api/auth/users/me/).
type User struct {
	ID          int    `json:"id,omitempty"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	EmployeeID  string `json:"employee_id,omitempty"`
	RoleDisplay string `json:"role_display,omitempty"`
}

// DisplayName возвращает "Имя Фамилия", если оба заданы, иначе username.
func (u User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// AvatarInitial — первая буква имени (или username), в верхнем регистре.
// Источник буквы совпадает с источником DisplayName.
func (u User) AvatarInitial() string {
	src := u.Username
	if u.FirstName != "" && u.LastName != "" {
		src = u.FirstName
	}
	if src == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(src)[0]))
}
