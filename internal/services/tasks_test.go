package services

import (
	"testing"
	"time"
)

func taskByID(t *testing.T, tasks []TaskStatus, id string) TaskStatus {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("no task with id %q", id)
	return TaskStatus{}
}

func TestComputeDailyTasksFresh(t *testing.T) {
	tasks := ComputeDailyTasks(0, 0, 0)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	for _, task := range tasks {
		if task.Completed {
			t.Fatalf("task %q completed with zero progress", task.ID)
		}
		if task.Progress != 0 {
			t.Fatalf("task %q: expected progress 0, got %d", task.ID, task.Progress)
		}
	}
}

func TestComputeDailyTasksThresholds(t *testing.T) {
	tasks := ComputeDailyTasks(4, 0, 9*time.Minute)
	if taskByID(t, tasks, "messages").Completed {
		t.Fatal("messages task completed below target")
	}
	if taskByID(t, tasks, "session").Completed {
		t.Fatal("session task completed below target")
	}

	tasks = ComputeDailyTasks(5, 1, 10*time.Minute)
	for _, task := range tasks {
		if !task.Completed {
			t.Fatalf("task %q not completed at target", task.ID)
		}
	}
}

func TestComputeDailyTasksClamped(t *testing.T) {
	tasks := ComputeDailyTasks(120, 7, 3*time.Hour)
	for _, task := range tasks {
		if task.Progress != task.Total {
			t.Fatalf("task %q: expected progress clamped to %d, got %d", task.ID, task.Total, task.Progress)
		}
		if !task.Completed {
			t.Fatalf("task %q not completed above target", task.ID)
		}
	}
}

func TestComputeDailyTasksIdempotent(t *testing.T) {
	first := ComputeDailyTasks(3, 1, 4*time.Minute)
	second := ComputeDailyTasks(3, 1, 4*time.Minute)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("recompute diverged: %+v vs %+v", first[i], second[i])
		}
	}
}
