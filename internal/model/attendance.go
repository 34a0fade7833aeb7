package model

import "time"

// UserRef — пользователь внутри записи посещаемости (может отсутствовать).
type UserRef struct {
	Username   string `json:"username"`
	EmployeeID string `json:"employee_id"`
}

// DeviceRef — устройство, зафиксировавшее отметку.
type DeviceRef struct {
	Name string `json:"name"`
}

// AttendanceRecord — отметка с биометрического терминала (только чтение).
type AttendanceRecord struct {
	ID         int        `json:"id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	User       *UserRef   `json:"user"`
	Device     *DeviceRef `json:"device"`
	VerifyType int        `json:"verify_type"`
	VerifyCode int        `json:"verify_code"`
}

// Username возвращает имя пользователя записи или "Unknown", если пользователь не указан.
func (r AttendanceRecord) Username() string {
	if r.User == nil || r.User.Username == "" {
		return "Unknown"
	}
	return r.User.Username
}

// EmployeeID возвращает табельный номер или "-".
func (r AttendanceRecord) EmployeeID() string {
	if r.User == nil || r.User.EmployeeID == "" {
		return "-"
	}
	return r.User.EmployeeID
}

// DeviceName возвращает имя устройства или "Unknown Device".
func (r AttendanceRecord) DeviceName() string {
	if r.Device == nil || r.Device.Name == "" {
		return "Unknown Device"
	}
	return r.Device.Name
}

// DashboardStats — четыре независимых счётчика дашборда.
// Каждый обновляется своим запросом; связей между полями нет.
type DashboardStats struct {
	TotalUsers      int
	TotalDevices    int
	TodayAttendance int
	PendingLeaves   int
}
