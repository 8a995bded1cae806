// Package alerts decides which catalog jobs match a user's job alerts and
// publishes the resulting notifications.
package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/types"
)

// NotificationType marks notifications created by alert matching.
const NotificationType = "job_match"

// Minimum time between checks of an alert.
const (
	dailyInterval   = 24 * time.Hour
	weeklyInterval  = 7 * 24 * time.Hour
	defaultInterval = time.Hour
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContains(haystack string, needles []string) bool {
	for _, n := range needles {
		if containsFold(haystack, n) {
			return true
		}
	}
	return false
}

// skillMatched reports whether an alert skill appears inside any job skill.
func skillMatched(alertSkill string, jobSkills []string) bool {
	for _, js := range jobSkills {
		if containsFold(js, alertSkill) {
			return true
		}
	}
	return false
}

// Matches reports whether the job satisfies any of the alert's criteria.
// All comparisons are case-insensitive substring checks.
func Matches(alert types.JobAlert, job types.JobRecord) bool {
	for _, s := range alert.Skills {
		if skillMatched(s, job.RequiredSkills) {
			return true
		}
	}
	if job.Location != "" && anyContains(job.Location, alert.Locations) {
		return true
	}
	if job.Company != "" && anyContains(job.Company, alert.Companies) {
		return true
	}
	return false
}

// Score rates how well a job fits an alert, 0-100. Each configured criterion
// contributes equally: skills by the fraction of alert skills found, location
// and company as all or nothing.
func Score(alert types.JobAlert, job types.JobRecord) int {
	var score float64
	criteria := 0

	if len(alert.Skills) > 0 {
		criteria++
		matched := 0
		for _, s := range alert.Skills {
			if skillMatched(s, job.RequiredSkills) {
				matched++
			}
		}
		score += float64(matched) / float64(len(alert.Skills))
	}
	if len(alert.Locations) > 0 {
		criteria++
		if job.Location != "" && anyContains(job.Location, alert.Locations) {
			score++
		}
	}
	if len(alert.Companies) > 0 {
		criteria++
		if job.Company != "" && anyContains(job.Company, alert.Companies) {
			score++
		}
	}

	if criteria == 0 {
		return 0
	}
	return ranking.RoundHalfUp(score / float64(criteria) * 100)
}

// Due reports whether enough time has passed since the alert was last checked.
func Due(alert types.JobAlert, now time.Time) bool {
	elapsed := now.Sub(alert.LastChecked)
	switch alert.Frequency {
	case types.FrequencyDaily:
		return elapsed >= dailyInterval
	case types.FrequencyWeekly:
		return elapsed >= weeklyInterval
	default:
		return elapsed >= defaultInterval
	}
}

// NewNotification builds the notification sent when job matches alert.
func NewNotification(alert types.JobAlert, job types.JobRecord, now time.Time) types.Notification {
	return types.Notification{
		UserID:     alert.UserID,
		AlertID:    alert.ID,
		JobID:      job.ID,
		Title:      "New Job Match: " + job.Title,
		Message:    fmt.Sprintf("A new job %q at %s matches your alert %q", job.Title, job.Company, alert.Name),
		Type:       NotificationType,
		MatchScore: Score(alert, job),
		CreatedAt:  now.UTC(),
	}
}

// CheckNewJob returns a notification for every active alert the job matches.
func CheckNewJob(alerts []types.JobAlert, job types.JobRecord, now time.Time) []types.Notification {
	out := []types.Notification{}
	for _, a := range alerts {
		if !a.IsActive || !a.HasCriteria() {
			continue
		}
		if Matches(a, job) {
			out = append(out, NewNotification(a, job, now))
		}
	}
	return out
}

// Pass is the outcome of one scheduled check over all alerts.
type Pass struct {
	Notifications []types.Notification `json:"notifications"`
	// Checked holds the alerts whose LastChecked should be advanced to the pass time.
	Checked []types.JobAlert `json:"checked"`
}

// CheckDue runs one pass: every active, due alert is compared with the jobs
// created since it was last checked. Alerts that produced notifications are
// returned in Checked with LastChecked set to now.
func CheckDue(alerts []types.JobAlert, jobs []types.JobRecord, now time.Time) Pass {
	pass := Pass{Notifications: []types.Notification{}, Checked: []types.JobAlert{}}
	for _, a := range alerts {
		if !a.IsActive || !a.HasCriteria() || !Due(a, now) {
			continue
		}

		matched := 0
		for _, job := range jobs {
			if !job.CreatedAt.After(a.LastChecked) {
				continue
			}
			if Matches(a, job) {
				pass.Notifications = append(pass.Notifications, NewNotification(a, job, now))
				matched++
			}
		}
		if matched > 0 {
			a.LastChecked = now
			pass.Checked = append(pass.Checked, a)
		}
	}
	return pass
}
