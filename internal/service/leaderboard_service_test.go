package service

import "testing"

// 未配置 Redis 时失效操作必须是空操作，补算与提交路径都会无条件调用它。
func TestInvalidateCacheWithoutRedis(t *testing.T) {
	s := NewLeaderboardService(nil, nil, nil)
	s.InvalidateCache()
}

// 补算完成后必须能触达榜单缓存失效，否则旧余额可在 TTL 内继续出现。
func TestBackfillServiceCarriesLeaderboard(t *testing.T) {
	lb := NewLeaderboardService(nil, nil, nil)
	b := NewBackfillService(nil, nil, nil, lb)
	if b.Leaderboard != lb {
		t.Fatal("backfill service did not keep the leaderboard reference")
	}
	b.Leaderboard.InvalidateCache()
}
