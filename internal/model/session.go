package model

// Session — локально сохранённая сессия: токен и пользователь всегда вместе.
// Remember переживает сброс по 401, но не явный выход.
type Session struct {
	Token    string `json:"token"`
	User     User   `json:"user"`
	Remember bool   `json:"remember,omitempty"`
}
