package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/alerts"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/types"
)

var checkAlertsCmd = &cobra.Command{
	Use:   "check-alerts",
	Short: "Run one job alert check",
	Long: `Match job alerts against jobs and optionally publish the notifications to an AMQP exchange.

With --job the single job is checked against every active alert, as when a job is posted.
With --jobs only alerts that are due are checked, against jobs created since their last
check; the full alert list with updated check times is written to --alerts-out.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCheckAlerts(cmd.Context(), cmd.OutOrStdout(), checkAlertsOpts)
	},
}

type checkAlertsOptions struct {
	Alerts    string
	Job       string
	Jobs      string
	AlertsOut string
	AMQPURL   string
}

var checkAlertsOpts checkAlertsOptions

// notificationPublisher is the part of alerts.Publisher the command uses.
type notificationPublisher interface {
	PublishAll(ctx context.Context, notifications []types.Notification) (int, error)
	Close() error
}

var dialPublisher = func(url, exchange string) (notificationPublisher, error) {
	return alerts.Dial(url, exchange)
}

func init() {
	checkAlertsCmd.Flags().StringVarP(&checkAlertsOpts.Alerts, "alerts", "a", "", "Path to alerts JSON (required)")
	checkAlertsCmd.Flags().StringVar(&checkAlertsOpts.Job, "job", "", "Path to a single job JSON")
	checkAlertsCmd.Flags().StringVar(&checkAlertsOpts.Jobs, "jobs", "", "Path to a jobs JSON list for a scheduled pass")
	checkAlertsCmd.Flags().StringVar(&checkAlertsOpts.AlertsOut, "alerts-out", "", "Where to write alerts with updated check times (scheduled pass)")
	checkAlertsCmd.Flags().StringVar(&checkAlertsOpts.AMQPURL, "amqp-url", "", "AMQP broker URL; notifications are only printed when empty")
	_ = checkAlertsCmd.MarkFlagRequired("alerts")
	checkAlertsCmd.MarkFlagsMutuallyExclusive("job", "jobs")
	checkAlertsCmd.MarkFlagsOneRequired("job", "jobs")

	rootCmd.AddCommand(checkAlertsCmd)
}

func runCheckAlerts(ctx context.Context, out io.Writer, opts checkAlertsOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	var jobAlerts []types.JobAlert
	if err := readJSON(opts.Alerts, &jobAlerts); err != nil {
		return err
	}

	now := time.Now().UTC()
	var notifications []types.Notification
	switch {
	case opts.Job != "":
		var job types.JobRecord
		if err := readJSON(opts.Job, &job); err != nil {
			return err
		}
		if job.CreatedAt.IsZero() {
			job.CreatedAt = now
		}
		notifications = alerts.CheckNewJob(jobAlerts, job, now)
	case opts.Jobs != "":
		jobs, err := loadJobs(opts.Jobs)
		if err != nil {
			return err
		}
		pass := alerts.CheckDue(jobAlerts, jobs, now)
		notifications = pass.Notifications
		if opts.AlertsOut != "" {
			if err := writeJSON(opts.AlertsOut, withCheckTimes(jobAlerts, pass.Checked)); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "Updated check time on %d alerts\n", len(pass.Checked))
	default:
		return fmt.Errorf("either --job or --jobs must be provided")
	}

	observability.NewPrinter(out).PrintNotifications(notifications)

	url := opts.AMQPURL
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	if url == "" {
		url = cfg.AMQPURL
	}
	if url == "" || len(notifications) == 0 {
		return nil
	}

	publisher, err := dialPublisher(url, cfg.AlertExchange)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	sent, err := publisher.PublishAll(ctx, notifications)
	if err != nil {
		return fmt.Errorf("published %d of %d notifications: %w", sent, len(notifications), err)
	}
	fmt.Fprintf(out, "Published %d notifications to %s\n", sent, cfg.AlertExchange)
	return nil
}

// withCheckTimes returns every alert, taking the check time from checked where
// an alert was part of the pass.
func withCheckTimes(all, checked []types.JobAlert) []types.JobAlert {
	updated := make(map[uuid.UUID]time.Time, len(checked))
	for _, a := range checked {
		updated[a.ID] = a.LastChecked
	}

	out := make([]types.JobAlert, len(all))
	for i, a := range all {
		if t, ok := updated[a.ID]; ok {
			a.LastChecked = t
		}
		out[i] = a
	}
	return out
}
