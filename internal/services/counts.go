package services

import "workboard/internal/models"

// ComputeCounts folds a task list into per-column tallies. Completed tasks
// that are still unpaid additionally bump UnpaidCompleted. Tasks with an
// unknown status are skipped, not counted and not an error. The fold is a
// plain multiset sum, so ordering of the input never matters.
func ComputeCounts(tasks []models.Task) models.TaskCounts {
	var c models.TaskCounts
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			c.Pending++
		case models.StatusOngoing:
			c.Ongoing++
		case models.StatusCompleted:
			c.Completed++
			if !t.Paid {
				c.UnpaidCompleted++
			}
		}
	}
	return c
}
