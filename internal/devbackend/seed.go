package devbackend

import (
	"math/rand"
	"time"

	"github.com/attendash/internal/model"
)

// seed наполняет стаб демо-данными. Вызывается один раз из New.
func (s *Server) seed() {
	s.accounts = []account{
		{
			user: model.User{
				ID: 1, Username: "admin", FirstName: "Ада", LastName: "Админова",
				EmployeeID: "EMP-0001", RoleDisplay: "Administrator",
			},
			password: "admin123",
		},
		{
			user: model.User{
				ID: 2, Username: "bob", FirstName: "Боб", LastName: "Смирнов",
				EmployeeID: "EMP-0002", RoleDisplay: "HR Manager",
			},
			password: "bob123",
		},
		{
			user:     model.User{ID: 3, Username: "kiosk", EmployeeID: "EMP-0003"},
			password: "kiosk123",
		},
	}
	s.devices = []device{
		{ID: 1, Name: "Main Entrance", IP: "10.0.0.21"},
		{ID: 2, Name: "Warehouse", IP: "10.0.0.22"},
		{ID: 3, Name: "Office 2F", IP: "10.0.0.23"},
	}
	s.leaves = []leave{
		{ID: 1, Status: "pending", Reason: "vacation"},
		{ID: 2, Status: "pending", Reason: "sick"},
		{ID: 3, Status: "approved", Reason: "vacation"},
	}

	// Отметки за последние пару часов, чтобы дашборд сразу был живым.
	start := s.now().Add(-2 * time.Hour)
	for t := start; t.Before(s.now()); t = t.Add(time.Duration(5+rand.Intn(15)) * time.Minute) {
		s.appendPunch(t)
	}
	s.lastSeed = s.now()
}

// refreshRecords подсыпает свежую отметку, если последняя старше 45 секунд, —
// лента на дашборде заметно движется между тиками опроса. Вызывается под mu.
func (s *Server) refreshRecords() {
	if s.now().Sub(s.lastSeed) < 45*time.Second {
		return
	}
	s.appendPunch(s.now())
	s.lastSeed = s.now()
}

var punchTypes = []int{0, 1, 1, 2, 3, 15, 42} // 42 — «неизвестный» код с терминала
var punchCodes = []int{0, 0, 1, 1, 2, 3, 4, 5, 99}

// appendPunch добавляет одну отметку со случайным сотрудником, устройством
// и способом верификации. Вызывается под mu (или из seed до старта сервера).
func (s *Server) appendPunch(ts time.Time) {
	acc := s.accounts[rand.Intn(len(s.accounts))]
	dev := s.devices[rand.Intn(len(s.devices))]
	s.records = append(s.records, model.AttendanceRecord{
		ID:        s.nextID,
		Timestamp: ts,
		User: &model.UserRef{
			Username:   acc.user.Username,
			EmployeeID: acc.user.EmployeeID,
		},
		Device:     &model.DeviceRef{Name: dev.Name},
		VerifyType: punchTypes[rand.Intn(len(punchTypes))],
		VerifyCode: punchCodes[rand.Intn(len(punchCodes))],
	})
	s.nextID++
}
