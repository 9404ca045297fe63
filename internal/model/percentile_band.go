package model

// TestPercentileBand 管理员维护的分数段到百分位标签的映射，
// 用于把模考分数对照为估算百分位
// swagger:model TestPercentileBand
type TestPercentileBand struct {
	UUIDBase
	TestID          string `gorm:"size:36;index;not null" json:"testId"`
	MinScore        int    `json:"minScore"`
	MaxScore        *int   `json:"maxScore,omitempty"` // 空表示无上限
	PercentileLabel string `gorm:"size:50;not null" json:"percentileLabel"`
}

func (TestPercentileBand) TableName() string {
	return "test_percentile_bands"
}
