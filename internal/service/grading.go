package service

import (
	"mockera_backend/internal/model"
	"sort"
	"strings"
)

// AnswerKind 区分一次作答在判分时的形态
type AnswerKind int

const (
	// 未作答
	AnswerNone AnswerKind = iota
	// 单选，单个选项字母
	AnswerSingle
	// 多选，规范化后的选项集合
	AnswerMulti
	// 数值，去除首尾空白后的字符串
	AnswerNumeric
)

// Answer 按题型解析一次后的作答值。提交值本身是松散字符串，
// 含义由题型决定，这里解析一次，后续判分不再重复拆逗号。
type Answer struct {
	Kind AnswerKind
	// Single/Numeric 为处理后的标量；Multi 为排序去空后重新拼接的规范串
	Value string
}

// ParseAnswer 把原始提交值按题型解析为带标签的作答值。
// 空提交一律视为未作答，不是错误。
func ParseAnswer(questionType model.QuestionType, raw string) Answer {
	if raw == "" {
		return Answer{Kind: AnswerNone}
	}
	switch questionType {
	case model.QuestionNUM:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Answer{Kind: AnswerNone}
		}
		return Answer{Kind: AnswerNumeric, Value: trimmed}
	case model.QuestionMSQ:
		canonical := canonicalChoices(raw)
		if canonical == "" {
			return Answer{Kind: AnswerNone}
		}
		return Answer{Kind: AnswerMulti, Value: canonical}
	default:
		return Answer{Kind: AnswerSingle, Value: raw}
	}
}

// canonicalChoices 把逗号拼接的选项串规范化：拆分、去空白、丢弃空项、
// 字典序排序后重新拼接，使 "c, a" 与 "a,c" 等价
func canonicalChoices(s string) string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}

// IsCorrect 判定一次作答是否正确。纯函数，相同输入恒返回相同结果。
// 数值题只做去空白后的字符串精确比较，不做数值等价（"42.0" ≠ "42"）。
func IsCorrect(q *model.Question, submitted string) bool {
	answer := ParseAnswer(q.QuestionType, submitted)
	switch answer.Kind {
	case AnswerNone:
		return false
	case AnswerNumeric:
		return answer.Value == strings.TrimSpace(q.CorrectNumeric)
	case AnswerMulti:
		return answer.Value == canonicalChoices(q.CorrectOption)
	default:
		return answer.Value == q.CorrectOption
	}
}
