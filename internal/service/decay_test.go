package service

import (
	"testing"
	"time"

	"mockera_backend/internal/model"
)

func decayUser(balance int, lastDecayAt *time.Time, shieldUntil *time.Time) *model.User {
	return &model.User{
		PerformanceCredits: balance,
		LastDecayAt:        lastDecayAt,
		RankShieldUntil:    shieldUntil,
	}
}

func TestApplyDecayAmounts(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	testCases := []struct {
		name            string
		balance         int
		daysAgo         int
		expectedBalance int
		expectedDecayed int
	}{
		// floor(500*0.01)=5 < 10，走最低衰减
		{"floor applies", 500, 1, 490, 10},
		// floor(5000*0.01)=50，两天共 100
		{"proportional two days", 5000, 2, 4900, 100},
		{"small balance clamps to zero", 5, 1, 0, 5},
		{"zero balance stays zero", 0, 3, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			anchor := now.AddDate(0, 0, -tc.daysAgo)
			user := decayUser(tc.balance, &anchor, nil)

			result := ApplyDecay(now, user)
			if !result.Changed {
				t.Fatal("expected Changed=true")
			}
			if result.NewBalance != tc.expectedBalance {
				t.Errorf("NewBalance = %d, want %d", result.NewBalance, tc.expectedBalance)
			}
			if result.Decayed != tc.expectedDecayed {
				t.Errorf("Decayed = %d, want %d", result.Decayed, tc.expectedDecayed)
			}
		})
	}
}

func TestApplyDecayIdempotentPerDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	anchor := now.AddDate(0, 0, -1)
	user := decayUser(500, &anchor, nil)

	first := ApplyDecay(now, user)
	if first.NewBalance != 490 {
		t.Fatalf("first decay = %d, want 490", first.NewBalance)
	}

	// 落库后同日再评估应无变化
	user.PerformanceCredits = first.NewBalance
	user.LastDecayAt = &first.NewLastDecayAt

	second := ApplyDecay(now.Add(10*time.Hour), user)
	if second.Changed {
		t.Errorf("same-day re-evaluation should not change anything, got %+v", second)
	}
	if second.NewBalance != 490 {
		t.Errorf("NewBalance = %d, want 490", second.NewBalance)
	}
}

func TestApplyDecayShieldFreezes(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	anchor := now.AddDate(0, 0, -5)
	shieldUntil := now.Add(2 * time.Hour)
	user := decayUser(1000, &anchor, &shieldUntil)

	result := ApplyDecay(now, user)
	if result.NewBalance != 1000 {
		t.Errorf("shielded balance changed: %d", result.NewBalance)
	}
	if result.Decayed != 0 {
		t.Errorf("Decayed = %d, want 0", result.Decayed)
	}
	// 锚点仍要推进到今天，护盾到期后不能补扣积压的衰减
	if !result.Changed {
		t.Fatal("expected anchor advance under shield")
	}
	if !result.NewLastDecayAt.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("NewLastDecayAt = %v, want today's midnight", result.NewLastDecayAt)
	}
}

func TestApplyDecayExpiredShield(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	anchor := now.AddDate(0, 0, -1)
	expired := now.Add(-time.Hour)
	user := decayUser(500, &anchor, &expired)

	result := ApplyDecay(now, user)
	if result.NewBalance != 490 {
		t.Errorf("expired shield should not block decay: %d", result.NewBalance)
	}
}

func TestApplyDecayNoAnchor(t *testing.T) {
	user := decayUser(300, nil, nil)
	result := ApplyDecay(time.Now(), user)
	if result.Changed {
		t.Errorf("user with no history should not decay: %+v", result)
	}
	if result.NewBalance != 300 {
		t.Errorf("NewBalance = %d, want 300", result.NewBalance)
	}
}

func TestApplyDecayFallsBackToLastAttempt(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	lastAttempt := now.AddDate(0, 0, -1)
	user := &model.User{PerformanceCredits: 500, LastAttemptAt: &lastAttempt}

	result := ApplyDecay(now, user)
	if !result.Changed || result.NewBalance != 490 {
		t.Errorf("expected decay anchored on lastAttemptAt, got %+v", result)
	}
}
