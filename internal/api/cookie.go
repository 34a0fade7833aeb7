package api

import (
	"net/url"
	"strings"
)

// CookieValue извлекает значение куки name из сырой cookie-строки
// ("a=1; csrftoken=abc%3D1; b=2"). Имя сравнивается точно, по префиксу
// "name="; значение URL-декодируется. Разделителем имени и значения служит
// только первый "=" — значение может само содержать "=".
// Возвращает ("", false), если строка пуста или куки нет.
func CookieValue(raw, name string) (string, bool) {
	if raw == "" {
		return "", false
	}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, name+"=") {
			continue
		}
		val := part[len(name)+1:]
		// PathUnescape, не QueryUnescape: "+" в куке — литеральный плюс.
		if decoded, err := url.PathUnescape(val); err == nil {
			val = decoded
		}
		return val, true
	}
	return "", false
}
