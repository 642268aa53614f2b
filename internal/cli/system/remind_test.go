package system

import (
	"context"
	"strings"
	"testing"

	"github.com/julianstephens/streakline/internal/notifier"
)

type recordedReminder struct {
	title, text string
}

type fakeSender struct {
	sent []recordedReminder
	err  error
}

func (f *fakeSender) Notify(_ context.Context, title, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, recordedReminder{title: title, text: text})
	return nil
}

func useFakeSender(t *testing.T) *fakeSender {
	t.Helper()
	fake := &fakeSender{}
	old := newSender
	newSender = func() sender { return fake }
	t.Cleanup(func() { newSender = old })
	return fake
}

func TestRemindCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	fake := useFakeSender(t)

	// testNow is 2025-01-10.
	atRisk := addGoal(t, ctx, "Run")
	logDays(t, ctx, atRisk, "2025-01-08", "2025-01-09")
	done := addGoal(t, ctx, "Read")
	logDays(t, ctx, done, "2025-01-09", "2025-01-10")
	broken := addGoal(t, ctx, "Stretch")
	logDays(t, ctx, broken, "2025-01-07")
	addGoal(t, ctx, "Journal")

	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}

	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d: %+v", len(fake.sent), fake.sent)
	}
	if !strings.Contains(fake.sent[0].title, "Run") {
		t.Errorf("reminder title = %q, want it to name Run", fake.sent[0].title)
	}
	if !strings.Contains(fake.sent[0].text, "2 day(s)") {
		t.Errorf("reminder text = %q, want the current streak", fake.sent[0].text)
	}
}

func TestRemindCmd_DryRunSendsNothing(t *testing.T) {
	ctx, _ := setupTestDB(t)
	fake := useFakeSender(t)

	goal := addGoal(t, ctx, "Run")
	logDays(t, ctx, goal, "2025-01-09")

	if err := (&RemindCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("remind --dry-run failed: %v", err)
	}
	if len(fake.sent) != 0 {
		t.Errorf("dry run sent %d reminders", len(fake.sent))
	}
}

func TestRemindCmd_Disabled(t *testing.T) {
	ctx, _ := setupTestDB(t)
	fake := useFakeSender(t)

	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.ReminderEnabled = false
	if err := ctx.Store.SaveSettings(ctx.Ctx(), settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	goal := addGoal(t, ctx, "Run")
	logDays(t, ctx, goal, "2025-01-09")

	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if len(fake.sent) != 0 {
		t.Errorf("disabled reminders sent %d notifications", len(fake.sent))
	}
}

func TestRemindCmd_TrayNotRunning(t *testing.T) {
	ctx, _ := setupTestDB(t)
	fake := useFakeSender(t)
	fake.err = notifier.ErrTrayNotRunning

	goal := addGoal(t, ctx, "Run")
	logDays(t, ctx, goal, "2025-01-09")

	err := (&RemindCmd{}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("expected tray error, got %v", err)
	}
}
