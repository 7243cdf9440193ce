package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lucent_test.sqlite")
	sqlStore, err := New(dbPath)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })
	if err := sqlStore.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	return sqlStore
}

func TestRecordReplyIsIdempotentPerComment(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	has, err := sqlStore.HasReply(ctx, "c-1")
	if err != nil {
		t.Fatalf("has reply: %v", err)
	}
	if has {
		t.Fatalf("fresh store claims reply exists")
	}

	if err := sqlStore.RecordReply(ctx, "c-1", "v-1", "u-1", "the_fool", now); err != nil {
		t.Fatalf("record reply: %v", err)
	}
	if err := sqlStore.RecordReply(ctx, "c-1", "v-1", "u-1", "the_fool", now.Add(time.Minute)); err != nil {
		t.Fatalf("record reply again: %v", err)
	}

	has, err = sqlStore.HasReply(ctx, "c-1")
	if err != nil {
		t.Fatalf("has reply: %v", err)
	}
	if !has {
		t.Fatalf("recorded reply not found")
	}

	var rows int
	if err := sqlStore.db.QueryRow(`SELECT COUNT(*) FROM replies WHERE comment_id = 'c-1'`).Scan(&rows); err != nil {
		t.Fatalf("count replies: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly one reply row, got %d", rows)
	}
}

func TestRecordReplyUpdatesCounterAndCooldown(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if err := sqlStore.RecordReply(ctx, "c-1", "v-1", "u-1", "the_fool", now); err != nil {
		t.Fatalf("record reply: %v", err)
	}

	count, err := sqlStore.CounterFor(ctx, "2026-03-14", "the_fool")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected counter 1, got %d", count)
	}

	onCooldown, err := sqlStore.UserOnCooldown(ctx, "u-1", 24*time.Hour, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("cooldown: %v", err)
	}
	if !onCooldown {
		t.Fatalf("user should be on cooldown an hour after a reply")
	}
}

func TestUserCooldownBoundary(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()
	repliedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if err := sqlStore.RecordReply(ctx, "c-1", "v-1", "u-1", "death", repliedAt); err != nil {
		t.Fatalf("record reply: %v", err)
	}

	window := 24 * time.Hour
	cases := []struct {
		now  time.Time
		want bool
	}{
		{repliedAt, true},
		{repliedAt.Add(window - time.Second), true},
		{repliedAt.Add(window), false},
		{repliedAt.Add(window + time.Hour), false},
	}
	for _, tc := range cases {
		got, err := sqlStore.UserOnCooldown(ctx, "u-1", window, tc.now)
		if err != nil {
			t.Fatalf("cooldown at %s: %v", tc.now, err)
		}
		if got != tc.want {
			t.Fatalf("cooldown at %s = %v, want %v", tc.now, got, tc.want)
		}
	}

	got, err := sqlStore.UserOnCooldown(ctx, "nobody", window, repliedAt)
	if err != nil {
		t.Fatalf("cooldown for unknown user: %v", err)
	}
	if got {
		t.Fatalf("unknown user must be eligible")
	}
}

func TestTopSymbolToday(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	_, ok, err := sqlStore.TopSymbolToday(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("top symbol: %v", err)
	}
	if ok {
		t.Fatalf("empty day should have no top symbol")
	}

	for i := 0; i < 3; i++ {
		if err := sqlStore.RecordReply(ctx, "a-"+string(rune('0'+i)), "v-1", "ua-"+string(rune('0'+i)), "the_fool", now); err != nil {
			t.Fatalf("record reply: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := sqlStore.RecordReply(ctx, "b-"+string(rune('0'+i)), "v-1", "ub-"+string(rune('0'+i)), "the_fool_reversed", now); err != nil {
			t.Fatalf("record reply: %v", err)
		}
	}
	// Another day's counts must not leak into today.
	if err := sqlStore.RecordReply(ctx, "c-0", "v-1", "uc-0", "the_tower", now.Add(48*time.Hour)); err != nil {
		t.Fatalf("record reply: %v", err)
	}

	top, ok, err := sqlStore.TopSymbolToday(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("top symbol: %v", err)
	}
	if !ok {
		t.Fatalf("expected a top symbol")
	}
	if top.CardKey != "the_fool" || top.Count != 3 {
		t.Fatalf("unexpected top symbol %+v", top)
	}
}

func TestWatermarkRoundTrip(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()

	_, ok, err := sqlStore.Watermark(ctx, "v-1")
	if err != nil {
		t.Fatalf("watermark: %v", err)
	}
	if ok {
		t.Fatalf("fresh store should have no watermark")
	}

	first := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if err := sqlStore.SetWatermark(ctx, "v-1", first); err != nil {
		t.Fatalf("set watermark: %v", err)
	}
	second := first.Add(time.Hour)
	if err := sqlStore.SetWatermark(ctx, "v-1", second); err != nil {
		t.Fatalf("advance watermark: %v", err)
	}

	got, ok, err := sqlStore.Watermark(ctx, "v-1")
	if err != nil {
		t.Fatalf("watermark: %v", err)
	}
	if !ok || !got.Equal(second) {
		t.Fatalf("watermark = %v ok=%v, want %v", got, ok, second)
	}
}

func TestDailyUsageRollsOver(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()

	usage, err := sqlStore.DailyUsage(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("daily usage: %v", err)
	}
	if usage.Day != "2026-03-14" || usage.Used != 0 {
		t.Fatalf("unexpected fresh usage %+v", usage)
	}

	usage.Used = 12
	if err := sqlStore.SetDailyUsage(ctx, usage); err != nil {
		t.Fatalf("set usage: %v", err)
	}

	same, err := sqlStore.DailyUsage(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("daily usage: %v", err)
	}
	if same.Used != 12 {
		t.Fatalf("expected used 12, got %d", same.Used)
	}

	next, err := sqlStore.DailyUsage(ctx, "2026-03-15")
	if err != nil {
		t.Fatalf("daily usage after rollover: %v", err)
	}
	if next.Day != "2026-03-15" || next.Used != 0 {
		t.Fatalf("expected reset usage, got %+v", next)
	}
}

func TestRunAudit(t *testing.T) {
	sqlStore := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	id, err := sqlStore.StartRun(ctx, "replies", start)
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if id == "" {
		t.Fatalf("empty run id")
	}
	if err := sqlStore.FinishRun(ctx, id, start.Add(time.Minute), 3, "Replied to 3 comments. Used today: 3/180"); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	var replied int
	var summary string
	if err := sqlStore.db.QueryRow(`SELECT replied, summary FROM runs WHERE id = ?`, id).Scan(&replied, &summary); err != nil {
		t.Fatalf("read run: %v", err)
	}
	if replied != 3 || summary == "" {
		t.Fatalf("unexpected run row replied=%d summary=%q", replied, summary)
	}
}
