package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name  string   `gorm:"size:100;not null" json:"name"`
	Email string   `gorm:"size:100;unique;not null" json:"email"`
	Image string   `gorm:"size:500" json:"image"`
	Role  UserRole `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`

	// 积分余额：提交答卷时增加，排行榜读取时惰性衰减，永不为负
	PerformanceCredits int `gorm:"default:0" json:"performanceCredits"`
	// 连续答题天数
	StreakDays      int        `gorm:"default:0" json:"streakDays"`
	LastAttemptAt   *time.Time `json:"lastAttemptAt,omitempty"`
	LastDecayAt     *time.Time `json:"lastDecayAt,omitempty"`
	RankShieldUntil *time.Time `json:"rankShieldUntil,omitempty"`
}

func (User) TableName() string {
	return "users"
}
