package model

// Severity — визуальный класс бейджа действия.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Badge — подпись действия и её визуальный класс.
type Badge struct {
	Text     string
	Severity Severity
}

// Коды способов верификации и действий фиксированы прошивкой терминалов;
// серверного справочника нет, таблицы ведутся вручную.
var verifyTypes = map[int]string{
	0:  "Password",
	1:  "Fingerprint",
	2:  "Card",
	3:  "Face",
	4:  "Iris",
	15: "Palm",
}

var verifyCodes = map[int]Badge{
	0: {Text: "Check In", Severity: SeveritySuccess},
	1: {Text: "Check Out", Severity: SeverityDanger},
	2: {Text: "Break Out", Severity: SeverityWarning},
	3: {Text: "Break In", Severity: SeverityInfo},
	4: {Text: "OT In", Severity: SeverityInfo},
	5: {Text: "OT Out", Severity: SeverityInfo},
}

// VerifyTypeLabel возвращает название способа верификации, для неизвестного кода — "Unknown".
func VerifyTypeLabel(code int) string {
	if label, ok := verifyTypes[code]; ok {
		return label
	}
	return "Unknown"
}

// VerifyCodeBadge возвращает бейдж действия, для неизвестного кода — нейтральный "Unknown".
func VerifyCodeBadge(code int) Badge {
	if b, ok := verifyCodes[code]; ok {
		return b
	}
	return Badge{Text: "Unknown", Severity: SeverityInfo}
}
